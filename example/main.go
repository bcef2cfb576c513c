// Example program demonstrating the devkit library API.
//
// Run from the repo root:
//
//	go run ./example/
//
// To preview launch.json for a project that has a .vscode directory:
//
//	DEVKIT_PROJECT=/path/to/project go run ./example/
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/MyCarrier-DevOps/go-devkit/pkg/devkit"
)

func main() {
	previewBumps()

	if root := os.Getenv("DEVKIT_PROJECT"); root != "" {
		previewLaunch(root)
	}
}

func previewBumps() {
	cases := []devkit.BumpOptions{
		{Test: "1.2.3"},
		{Test: "1.2.3", Minor: true, Identifier: "beta"},
		{Test: "1.3.0-beta.0", AdvanceIdentifier: true},
		{Test: "1.3.0-rc.2", AdvanceIdentifier: true},
		{Test: "1.3.0-rc.2", AdvanceIdentifier: true, ExhaustedIdentifier: "restart-cycle"},
	}

	for _, opts := range cases {
		result, err := devkit.Bump(context.Background(), opts)
		if err != nil {
			log.Fatalf("bump failed: %v", err)
		}
		fmt.Printf("%-14s %-24s → %s\n", opts.Test, result.Decision, result.Version)
	}
}

func previewLaunch(root string) {
	result, err := devkit.GenerateLaunch(devkit.LaunchOptions{
		Root:   root,
		DryRun: true,
	})
	if err != nil {
		log.Fatalf("launch generation failed: %v", err)
	}

	fmt.Printf("\n%s (%d generated, %d kept)\n", result.Path, result.Generated, result.Retained)
	os.Stdout.Write(result.Document)
}
