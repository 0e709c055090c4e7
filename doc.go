// Package heykube provides a Go library for interacting with HEYKUBE smart
// Rubik's cubes via Bluetooth Low Energy (BLE).
//
// # Features
//
//   - Device discovery and connection
//   - Real-time move tracking with timestamps
//   - Full cube state readout and simulation (works standalone without BLE)
//   - Solution progress and pattern-match notifications
//   - On-cube hints, lights, sounds and built-in patterns
//
// # Quick Start
//
// Connect to a HEYKUBE and track moves:
//
//	ctx := context.Background()
//	cube, err := heykube.ConnectFirst(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer cube.Close()
//
//	cube.OnMove(func(m heykube.Move) {
//	    fmt.Println("Move:", m.Notation())
//	})
//
//	cube.OnSolved(func() {
//	    fmt.Println("Solved!")
//	})
//
//	// Keep running...
//	select {}
//
// # Standalone Cube Simulation
//
// The Cube type can be used without a BLE connection:
//
//	cube := heykube.NewCube()
//
//	// Apply moves from notation
//	cube.ApplyNotation("R U R' U'")
//
//	fmt.Println("Solved:", cube.IsSolved())
//
// Notation follows standard conventions: face turns (U, L, F, R, B, D),
// primes (R'), doubles (R2), wide turns (u, l, f, r, b, d), slice moves
// (M, E, S), whole-cube rotations (x, y, z) and parenthesized groups
// with a repeat count ("(R U R' U')3").
//
// # Pattern Matching
//
// A Match describes a target coloring of the cube, with DontCare entries
// for facelets that may hold any color. Matches can be registered on the
// cube so it notifies when the pattern is reached:
//
//	m := heykube.NewMatch().AddCross(heykube.FaceD)
//	cube.WriteMatch(m)
//	cube.OnMatch(func() { fmt.Println("cross done") })
package heykube
