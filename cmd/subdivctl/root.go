// SPDX-License-Identifier: Unlicense OR MIT

// Package main is the subdivctl CLI, grounded on inference-sim's
// cmd/root.go: one Cobra root command, one Execute entrypoint, flags
// bound to package-level vars in init.
package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	projectDir string
	frameCount int
	capacity   int
	cacheDepth int
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "subdivctl",
	Short: "Drive the adaptive subdivision pipeline host-side on the CPU",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	runCmd.Flags().StringVar(&projectDir, "project", "", "project directory containing project.yaml")
	runCmd.Flags().IntVar(&frameCount, "frames", 60, "number of frames to run")
	runCmd.Flags().IntVar(&capacity, "capacity", 0, "CBT capacity override (power of two in [2^17, 2^20]; 0 = use project.yaml)")
	runCmd.Flags().IntVar(&cacheDepth, "cache-depth", 0, "LEB cache depth override (0 = use project.yaml)")
	runCmd.Flags().StringVar(&logLevel, "log", "info", "log level (debug, info, warn, error)")
	_ = runCmd.MarkFlagRequired("project")

	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run N frames of the host-side update pipeline",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		if err := runProject(runOptions{
			projectDir: projectDir,
			frameCount: frameCount,
			capacity:   capacity,
			cacheDepth: cacheDepth,
		}); err != nil {
			logrus.Fatal(err)
		}
	},
}
