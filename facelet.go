package heykube

// Facelet is an index into the 54-entry cube state. Face i owns facelets
// 9*i..9*i+8 in the face order U, L, F, R, B, D, with the center at 9*i+4.
type Facelet int

// faceletNames maps facelet names to state indices. Single letters name
// centers, two letters edges ("UF" is the U sticker of the UF edge), three
// letters corners.
var faceletNames = map[string]Facelet{
	// Up face
	"ULB": 0, "UB": 3, "URB": 6,
	"UL": 1, "U": 4, "UR": 7,
	"ULF": 2, "UF": 5, "UFR": 8,
	// Left face
	"LUB": 9, "LU": 12, "LUF": 15,
	"LB": 10, "L": 13, "LF": 16,
	"LBD": 11, "LD": 14, "LFD": 17,
	// Front face
	"FUL": 18, "FU": 21, "FUR": 24,
	"FL": 19, "F": 22, "FR": 25,
	"FLD": 20, "FD": 23, "FRD": 26,
	// Right face
	"RUF": 27, "RU": 30, "RUB": 33,
	"RF": 28, "R": 31, "RB": 34,
	"RFD": 29, "RD": 32, "RBD": 35,
	// Back face
	"BUR": 36, "BU": 39, "BUL": 42,
	"BR": 37, "B": 40, "BL": 43,
	"BRD": 38, "BD": 41, "BLD": 44,
	// Down face
	"DLF": 45, "DF": 48, "DFR": 51,
	"DL": 46, "D": 49, "DR": 52,
	"DLB": 47, "DB": 50, "DRB": 53,
}

var faceletIndexNames = func() map[Facelet]string {
	m := make(map[Facelet]string, len(faceletNames))
	for name, idx := range faceletNames {
		m[idx] = name
	}
	return m
}()

// ParseFacelet looks up a facelet by name. Corner names are canonicalized
// so that "UBL" and "ULB" refer to the same facelet.
func ParseFacelet(name string) (Facelet, error) {
	if name == "" {
		return Facelet(4), nil
	}
	if len(name) == 3 {
		second, ok1 := faceletNames[name[1:2]]
		third, ok2 := faceletNames[name[2:3]]
		if !ok1 || !ok2 {
			return 0, ErrInvalidFacelet
		}
		if second > third {
			name = name[0:1] + name[2:3] + name[1:2]
		}
	}
	idx, ok := faceletNames[name]
	if !ok {
		return 0, ErrInvalidFacelet
	}
	return idx, nil
}

// Name returns the canonical name of the facelet, or "" if out of range.
func (f Facelet) Name() string {
	return faceletIndexNames[f]
}

// Face returns the face this facelet sits on.
func (f Facelet) Face() Face {
	return Face(f / 9)
}

// Color returns the color of this facelet on a solved cube.
func (f Facelet) Color() Color {
	return Color(f / 9)
}

// IsCenter reports whether this facelet is a face center.
func (f Facelet) IsCenter() bool {
	return f%9 == 4
}

// edgePairs lists the two stickers of each of the 12 edge pieces. The
// order and first-sticker choice match the firmware state encoding.
var edgePairs = [12][2]Facelet{
	{5, 21},  // UF
	{7, 30},  // UR
	{3, 39},  // UB
	{1, 12},  // UL
	{48, 23}, // DF
	{52, 32}, // DR
	{50, 41}, // DB
	{46, 14}, // DL
	{25, 28}, // FR
	{19, 16}, // FL
	{37, 34}, // BR
	{43, 10}, // BL
}

// cornerSets lists the three stickers of each of the 8 corner pieces,
// in the orientation order used by the firmware state encoding.
var cornerSets = [8][3]Facelet{
	{8, 24, 27},  // UFR
	{6, 33, 36},  // URB
	{0, 42, 9},   // ULB
	{2, 15, 18},  // ULF
	{51, 29, 26}, // DFR
	{45, 20, 17}, // DLF
	{47, 11, 44}, // DLB
	{53, 38, 35}, // DRB
}
