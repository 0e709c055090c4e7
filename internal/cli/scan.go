package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mtouzot/heykube"
)

var scanTimeout time.Duration

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan for HEYKUBE devices",
	Long:  `Scan for nearby HEYKUBE devices over Bluetooth LE and list them.`,
	RunE:  runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().DurationVar(&scanTimeout, "timeout", 5*time.Second, "Scan duration")
}

// scanForCube performs a single scan and returns whatever it found.
// Shared by every command that needs a device.
func scanForCube(timeout time.Duration) ([]heykube.Device, error) {
	fmt.Println("Scanning for HEYKUBE devices...")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	devices, err := heykube.Scan(ctx, timeout)
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}
	return devices, nil
}

func runScan(cmd *cobra.Command, args []string) error {
	devices, err := scanForCube(scanTimeout)
	if err != nil {
		return err
	}

	if len(devices) == 0 {
		fmt.Println("No HEYKUBE devices found")
		fmt.Println()
		fmt.Println("Tips:")
		fmt.Println("  - Rotate the cube to wake it up")
		fmt.Println("  - Make sure it is not connected to another app")
		return nil
	}

	fmt.Printf("Found %d device(s):\n", len(devices))
	for _, d := range devices {
		fmt.Printf("  - %s (UUID: %s, RSSI: %d)\n", d.Name, d.UUID, d.RSSI)
	}
	return nil
}
