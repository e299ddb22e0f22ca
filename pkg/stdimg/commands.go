// Package stdimg: authoritative registry of chromakey commands.
//
// The CLI builds its command tree, usage text and argument validation from
// this list. Keep it in step with the modes handled by pkg/pipeline.

package stdimg

// ArgSpec describes a single positional argument. Type drives validation:
// "path", "int", "float", "bool", "key".
type ArgSpec struct {
	Name        string // human name
	Type        string
	Required    bool
	Default     string // textual default (for help only)
	Description string
}

// CommandSpec defines a single command and its expected arguments.
type CommandSpec struct {
	Name        string
	Args        []ArgSpec
	Usage       string // short usage string
	Description string // brief description
}

// Commands is the authoritative list of commands.
var Commands = []CommandSpec{
	{
		Name: "mask",
		Args: []ArgSpec{
			{"input", "path", true, "", "image shot against a blue or green screen"},
			{"output", "path", true, "", "mask image to write"},
			{"keyColor", "key", true, "", "b (blue), g (green) or a (auto)"},
		},
		Usage:       "mask <input> <output> <keyColor>",
		Description: "Write a black/white mask: key-colored background black, foreground white.",
	},
	{
		Name: "keyout",
		Args: []ArgSpec{
			{"input", "path", true, "", "image shot against a blue or green screen"},
			{"output", "path", true, "", "image to write"},
			{"keyColor", "key", true, "", "b (blue), g (green) or a (auto)"},
		},
		Usage:       "keyout <input> <output> <keyColor>",
		Description: "Black out the key-colored background, using brightness-normalized thresholding.",
	},
	{
		Name: "blend",
		Args: []ArgSpec{
			{"foreground", "path", true, "", "foreground image"},
			{"background", "path", true, "", "background image"},
			{"mask", "path", true, "", "mask image, same size as foreground"},
			{"output", "path", true, "", "composited image to write"},
		},
		Usage:       "blend <foreground> <background> <mask> <output>",
		Description: "Composite the foreground onto the background at the origin.",
	},
	{
		Name: "blend-offset",
		Args: []ArgSpec{
			{"foreground", "path", true, "", "foreground image"},
			{"background", "path", true, "", "background image"},
			{"mask", "path", true, "", "mask image, same size as foreground"},
			{"dx", "int", true, "0", "column offset into background"},
			{"dy", "int", true, "0", "row offset into background"},
			{"output", "path", true, "", "composited image to write"},
		},
		Usage:       "blend-offset <foreground> <background> <mask> <dx> <dy> <output>",
		Description: "Composite the foreground onto the background at (dx,dy).",
	},
	{
		Name: "blend-transform",
		Args: []ArgSpec{
			{"foreground", "path", true, "", "foreground image"},
			{"background", "path", true, "", "background image"},
			{"mask", "path", true, "", "mask image, same size as foreground"},
			{"dx", "int", true, "0", "column offset into background"},
			{"dy", "int", true, "0", "row offset into background"},
			{"scaleFactor", "float", true, "1", "nearest-neighbor scale applied to foreground and mask"},
			{"rotate", "bool", true, "0", "1 rotates foreground and mask 90 degrees clockwise first"},
			{"output", "path", true, "", "composited image to write"},
		},
		Usage:       "blend-transform <foreground> <background> <mask> <dx> <dy> <scaleFactor> <rotate> <output>",
		Description: "Rotate (optional) and scale foreground and mask, then composite at (dx,dy).",
	},
	{
		Name: "adjust",
		Args: []ArgSpec{
			{"input", "path", true, "", "image to adjust"},
			{"output", "path", true, "", "image to write"},
		},
		Usage:       "adjust <input> <output>",
		Description: "Shift mid reds down and mid greens up, then apply a square-root horizontal ramp.",
	},
}

// Lookup returns the command named name.
func Lookup(name string) (CommandSpec, bool) {
	for _, c := range Commands {
		if c.Name == name {
			return c, true
		}
	}
	return CommandSpec{}, false
}
