package heykube

import "strings"

// Pattern identifies one of the cube's built-in light patterns.
type Pattern int

// NumPatterns is the number of built-in patterns.
const NumPatterns = 16

var patternNames = [NumPatterns]string{
	"checkerboard",
	"sixspots",
	"cubeincube",
	"anaconda",
	"tetris",
	"dontcrossline",
	"greenmamba",
	"spiralpattern",
	"python",
	"kilt",
	"cubeincubeincube",
	"orderinchaos",
	"plusminus",
	"displacedmotif",
	"cuaround",
	"verticalstripes",
}

func (p Pattern) String() string {
	if p < 0 || int(p) >= NumPatterns {
		return "unknown"
	}
	return patternNames[p]
}

// ParsePattern looks up a pattern by name, case-insensitively.
func ParsePattern(name string) (Pattern, error) {
	name = strings.ToLower(name)
	for i, n := range patternNames {
		if n == name {
			return Pattern(i), nil
		}
	}
	return 0, ErrUnknownPattern
}

// PatternNames returns the names of all built-in patterns in index order.
func PatternNames() []string {
	names := make([]string, NumPatterns)
	copy(names, patternNames[:])
	return names
}
