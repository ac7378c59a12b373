package render

// Theme holds colors for callgraph and CFG rendering.
type Theme struct {
	Background string
	NodeFill   string
	NodeBorder string
	TextColor  string

	// Edge colors by kind.
	EdgeTaken      string // entry block border, taken (T) branch
	EdgeCall       string // resolved indirect call (BLR via a tracked symbol)
	EdgeDirect     string // BL direct calls
	EdgeUnresolved string // fallthrough (F) branch, unresolved BLR

	// Node accents.
	StubFill     string // unresolved-symbol stubs (sub_xxx)
	ExternalText string // external / unresolved targets

	// Cluster styling.
	ClusterBorder string // subgraph cluster border
	ClusterLabel  string // subgraph cluster label text
}

// NASA is the NASA/Bauhaus theme: geometric, monochrome, sparse color.
var NASA = Theme{
	Background: "#F5F5F5",
	NodeFill:   "white",
	NodeBorder: "#1A1A1A",
	TextColor:  "#1A1A1A",

	EdgeTaken:      "#0B3D91", // NASA blue
	EdgeCall:       "#00695C", // teal
	EdgeDirect:     "#424242", // dark gray
	EdgeUnresolved: "#FC3D21", // NASA red

	StubFill:     "#ECEFF1", // blue-gray 50
	ExternalText: "#9E9E9E",

	ClusterBorder: "#BDBDBD",
	ClusterLabel:  "#757575",
}
