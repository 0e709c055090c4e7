package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mtouzot/heykube/internal/recorder"
	"github.com/mtouzot/heykube/internal/storage"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show connection status and cube information",
	Long:  `Display the recorder database status, any active solve session, and nearby HEYKUBE devices.`,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	stateFile, err := recorder.NewDefaultStateFile()
	if err != nil {
		return fmt.Errorf("failed to load state: %w", err)
	}

	state := stateFile.State()

	fmt.Println("HEYKUBE Status")
	fmt.Println("==============")
	fmt.Println()

	path := getDBPath()
	if path == "" {
		path = state.DBPath
	}
	if path == "" {
		path, _ = storage.DefaultDBPath()
	}
	fmt.Printf("Database: %s\n", path)

	db, err := storage.Open(path)
	if err == nil {
		defer db.Close()
		if err := db.MigrateUp(); err == nil {
			solveRepo := storage.NewSolveRepository(db)
			solves, _ := solveRepo.List(1)
			if len(solves) > 0 {
				fmt.Printf("Last solve: %s\n", solves[0].StartedAt.Format(time.RFC3339))
			}

			allSolves, _ := solveRepo.List(10000)
			fmt.Printf("Total solves: %d\n", len(allSolves))
		}
	}

	fmt.Println()

	if state.ActiveSolveID != "" {
		fmt.Printf("Active solve: %s\n", state.ActiveSolveID)
		fmt.Println("  (Use 'heykube solve end' to finish or 'heykube record' to continue)")
	} else {
		fmt.Println("No active solve")
	}

	fmt.Println()

	if state.LastDeviceID != "" {
		fmt.Printf("Last device: %s (%s)\n", state.LastDeviceName, state.LastDeviceID)
	} else {
		fmt.Println("No device history")
	}

	fmt.Println()

	devices, err := scanForCube(5 * time.Second)
	if err != nil {
		fmt.Printf("Scan error: %v\n", err)
		return nil
	}

	if len(devices) == 0 {
		fmt.Println("No HEYKUBE devices found")
	} else {
		fmt.Printf("Found %d device(s):\n", len(devices))
		for _, d := range devices {
			fmt.Printf("  - %s (UUID: %s, RSSI: %d)\n", d.Name, d.UUID, d.RSSI)
		}
	}

	return nil
}
