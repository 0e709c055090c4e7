package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mtouzot/heykube"
)

var (
	soundMajor bool
	soundMinor bool
)

var cubeCmd = &cobra.Command{
	Use:   "cube",
	Short: "Inspect and control a connected cube",
	Long:  `Commands that connect to a HEYKUBE and read its state or drive its lights, sounds, patterns, and hints.`,
}

var cubeInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show firmware, battery, and cube state",
	RunE:  runCubeInfo,
}

var cubePatternCmd = &cobra.Command{
	Use:   "pattern <name>",
	Short: "Light up a built-in pattern to solve toward",
	Long: `Enable one of the cube's built-in patterns. The cube lights the
facelets that differ and celebrates when the pattern is reached.

Run with no arguments to list the available patterns.`,
	RunE: runCubePattern,
}

var cubeInstructCmd = &cobra.Command{
	Use:   "instruct <moves>",
	Short: "Send a move sequence for the cube to teach",
	Long: `Queue a sequence of moves in standard notation on the cube. The
cube's lights walk the user through them one turn at a time.

Example:
  heykube cube instruct "R U R' U'"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCubeInstruct,
}

var cubeHintsCmd = &cobra.Command{
	Use:   "hints <on|off>",
	Short: "Turn the cube's solution hints on or off",
	Args:  cobra.ExactArgs(1),
	RunE:  runCubeHints,
}

var cubeSoundsCmd = &cobra.Command{
	Use:   "sounds <on|off>",
	Short: "Turn the cube's sounds on or off",
	Args:  cobra.ExactArgs(1),
	RunE:  runCubeSounds,
}

var cubeFlashCmd = &cobra.Command{
	Use:   "flash",
	Short: "Flash all the cube's lights",
	RunE:  runCubeFlash,
}

var cubeResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Mark the cube as solved in its current state",
	RunE:  runCubeReset,
}

var cubeSoundCmd = &cobra.Command{
	Use:   "sound [0-7]",
	Short: "Play one of the cube's sounds",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCubeSound,
}

var cubeLEDCmd = &cobra.Command{
	Use:   "led <index|off>",
	Short: "Light a single LED, or turn them all off",
	Args:  cobra.ExactArgs(1),
	RunE:  runCubeLED,
}

var cubePromptCmd = &cobra.Command{
	Use:   "prompt [0-5]",
	Short: "Flash the face LEDs with a prompt pattern",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCubePrompt,
}

var cubeMovesCmd = &cobra.Command{
	Use:   "moves",
	Short: "Show the cube's recent move history",
	RunE:  runCubeMoves,
}

var cubeQueueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Show the queued instruction moves",
	RunE:  runCubeQueue,
}

var cubeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the instruction queue",
	RunE:  runCubeClear,
}

func init() {
	rootCmd.AddCommand(cubeCmd)
	cubeCmd.AddCommand(cubeInfoCmd)
	cubeCmd.AddCommand(cubePatternCmd)
	cubeCmd.AddCommand(cubeInstructCmd)
	cubeCmd.AddCommand(cubeHintsCmd)
	cubeCmd.AddCommand(cubeSoundsCmd)
	cubeSoundsCmd.Flags().BoolVar(&soundMajor, "major", false, "Use the major scale")
	cubeSoundsCmd.Flags().BoolVar(&soundMinor, "minor", false, "Use the minor scale")
	cubeCmd.AddCommand(cubeFlashCmd)
	cubeCmd.AddCommand(cubeResetCmd)
	cubeCmd.AddCommand(cubeSoundCmd)
	cubeCmd.AddCommand(cubeLEDCmd)
	cubeCmd.AddCommand(cubePromptCmd)
	cubeCmd.AddCommand(cubeMovesCmd)
	cubeCmd.AddCommand(cubeQueueCmd)
	cubeCmd.AddCommand(cubeClearCmd)
}

// withCube connects to the first HEYKUBE found and runs fn against it.
func withCube(fn func(*heykube.HEYKUBE) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cube, err := heykube.ConnectFirst(ctx, heykube.WithLogger(newLogger()))
	if err != nil {
		return err
	}
	defer cube.Close()

	fmt.Printf("Connected: %s\n", cube.DeviceName())
	return fn(cube)
}

func runCubeInfo(cmd *cobra.Command, args []string) error {
	return withCube(func(cube *heykube.HEYKUBE) error {
		version, err := cube.ReadVersion()
		if err != nil {
			return fmt.Errorf("failed to read version: %w", err)
		}
		fmt.Printf("Firmware: %s\n", version)
		fmt.Printf("Motion: %v  Full6: %v  Hints: %v\n",
			version.Motion, version.Full6, version.Hints)

		battery, err := cube.ReadBattery()
		if err != nil {
			return fmt.Errorf("failed to read battery: %w", err)
		}
		charging := ""
		if battery.Charging {
			charging = " (charging)"
		}
		fmt.Printf("Battery: %d%% %.2fV%s\n", battery.Capacity, battery.Voltage, charging)

		orient, err := cube.ReadOrientation()
		if err == nil {
			fmt.Printf("Face up: %s\n", orient.FaceUp.Name())
		}

		if _, err := cube.ReadCubeState(); err != nil {
			return fmt.Errorf("failed to read cube state: %w", err)
		}
		fmt.Println()
		fmt.Println(cube.Cube())
		if cube.IsSolved() {
			fmt.Println("Cube is solved")
		} else {
			fmt.Printf("Phase: %s\n", cube.Cube().Phase().DisplayName())
		}
		return nil
	})
}

func runCubePattern(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		fmt.Println("Available patterns:")
		for _, name := range heykube.PatternNames() {
			fmt.Printf("  %s\n", name)
		}
		return nil
	}

	pattern, err := heykube.ParsePattern(args[0])
	if err != nil {
		return err
	}

	return withCube(func(cube *heykube.HEYKUBE) error {
		if err := cube.EnablePattern(pattern); err != nil {
			return fmt.Errorf("failed to enable pattern: %w", err)
		}
		fmt.Printf("Pattern enabled: %s\n", pattern)
		return nil
	})
}

func runCubeInstruct(cmd *cobra.Command, args []string) error {
	moves, err := heykube.ParseMoves(strings.Join(args, " "))
	if err != nil {
		return err
	}

	return withCube(func(cube *heykube.HEYKUBE) error {
		if err := cube.WriteInstructions(moves); err != nil {
			return fmt.Errorf("failed to write instructions: %w", err)
		}
		fmt.Printf("Queued %d moves: %s\n", len(moves), heykube.FormatMoves(moves))
		return nil
	})
}

func runCubeHints(cmd *cobra.Command, args []string) error {
	return withCube(func(cube *heykube.HEYKUBE) error {
		switch args[0] {
		case "on":
			if err := cube.TurnHintsOn(); err != nil {
				return err
			}
			fmt.Println("Hints on")
		case "off":
			if err := cube.TurnHintsOff(); err != nil {
				return err
			}
			fmt.Println("Hints off")
		default:
			return fmt.Errorf("expected 'on' or 'off', got %q", args[0])
		}
		return nil
	})
}

func runCubeSounds(cmd *cobra.Command, args []string) error {
	return withCube(func(cube *heykube.HEYKUBE) error {
		switch args[0] {
		case "on":
			if err := cube.EnableSounds(soundMajor, soundMinor); err != nil {
				return err
			}
			fmt.Println("Sounds on")
		case "off":
			if err := cube.DisableSounds(); err != nil {
				return err
			}
			fmt.Println("Sounds off")
		default:
			return fmt.Errorf("expected 'on' or 'off', got %q", args[0])
		}
		return nil
	})
}

func runCubeFlash(cmd *cobra.Command, args []string) error {
	return withCube(func(cube *heykube.HEYKUBE) error {
		if err := cube.FlashAllLights(); err != nil {
			return err
		}
		fmt.Println("Flashed")
		return nil
	})
}

func runCubeReset(cmd *cobra.Command, args []string) error {
	return withCube(func(cube *heykube.HEYKUBE) error {
		if err := cube.Reset(); err != nil {
			return fmt.Errorf("failed to reset: %w", err)
		}
		fmt.Println("Cube marked solved")
		return nil
	})
}

func runCubeSound(cmd *cobra.Command, args []string) error {
	sel := 0
	if len(args) > 0 {
		if _, err := fmt.Sscanf(args[0], "%d", &sel); err != nil {
			return fmt.Errorf("invalid sound %q", args[0])
		}
	}
	return withCube(func(cube *heykube.HEYKUBE) error {
		return cube.PlaySound(sel)
	})
}

func runCubeLED(cmd *cobra.Command, args []string) error {
	return withCube(func(cube *heykube.HEYKUBE) error {
		if args[0] == "off" {
			return cube.TurnOffLEDs()
		}
		var index int
		if _, err := fmt.Sscanf(args[0], "%d", &index); err != nil {
			return fmt.Errorf("invalid LED index %q", args[0])
		}
		return cube.LightLED(index)
	})
}

func runCubePrompt(cmd *cobra.Command, args []string) error {
	index := 0
	if len(args) > 0 {
		if _, err := fmt.Sscanf(args[0], "%d", &index); err != nil {
			return fmt.Errorf("invalid prompt %q", args[0])
		}
	}
	return withCube(func(cube *heykube.HEYKUBE) error {
		return cube.SendPrompt(index)
	})
}

func runCubeMoves(cmd *cobra.Command, args []string) error {
	return withCube(func(cube *heykube.HEYKUBE) error {
		moves, err := cube.ReadMoves()
		if err != nil {
			return fmt.Errorf("failed to read moves: %w", err)
		}
		if len(moves) == 0 {
			fmt.Println("No recent moves")
			return nil
		}
		fmt.Printf("%d moves: %s\n", len(moves), heykube.FormatMoves(moves))
		return nil
	})
}

func runCubeQueue(cmd *cobra.Command, args []string) error {
	return withCube(func(cube *heykube.HEYKUBE) error {
		moves, err := cube.ReadInstructions()
		if err != nil {
			return fmt.Errorf("failed to read instructions: %w", err)
		}
		if len(moves) == 0 {
			fmt.Println("Instruction queue is empty")
			return nil
		}
		fmt.Printf("%d queued: %s\n", len(moves), heykube.FormatMoves(moves))
		return nil
	})
}

func runCubeClear(cmd *cobra.Command, args []string) error {
	return withCube(func(cube *heykube.HEYKUBE) error {
		if err := cube.ClearInstructions(); err != nil {
			return err
		}
		fmt.Println("Instruction queue cleared")
		return nil
	})
}
