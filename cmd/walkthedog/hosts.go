package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/walk-the-dog/internal/registry"
)

var hostsCmd = &cobra.Command{
	Use:   "hosts",
	Short: "List all available hosts",
	Long:  `Shows the platforms the game can run on.`,
	Run:   runHosts,
}

func runHosts(_ *cobra.Command, _ []string) {
	hosts := registry.List()

	if len(hosts) == 0 {
		fmt.Println("No hosts available.")
		return
	}

	fmt.Println("Available hosts:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, h := range hosts {
		maxIDLen = max(maxIDLen, len(h.ID))
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, h := range hosts {
		fmt.Printf("  %-*s  %s\n", maxIDLen, h.ID, h.Title)
	}

	fmt.Println()
	fmt.Println("Run 'walkthedog play --host <id>' to play on a host.")
}
