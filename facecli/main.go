package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/chzyer/readline"
	"github.com/npillmayer/otface"
	"github.com/npillmayer/otface/internal/fontload"
	"github.com/npillmayer/otface/ot"
	"github.com/npillmayer/otface/otbitmap"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// tracer traces with key 'font.otface'
func tracer() tracing.Trace {
	return tracing.Select("font.otface")
}

func main() {
	initDisplay()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":   "go",
		"trace.font.otface": "Info",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	// command line flags
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	fontname := flag.String("font", "", "Font to load")
	flag.Parse()
	tracer().SetTraceLevel(tracing.LevelError) // will set the correct level later
	pterm.Info.Println("Welcome to the font face CLI")
	//
	// set up REPL
	repl, err := readline.New("face > ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	intp := &Intp{repl: repl}
	//
	// load font to use
	if err := intp.loadFont(*fontname); err != nil {
		tracer().Errorf(err.Error())
		os.Exit(4)
	}
	//
	// start receiving commands
	pterm.Info.Println("Quit with <ctrl>D")
	switch *tlevel {
	case "Debug":
		tracer().SetTraceLevel(tracing.LevelDebug)
	case "Info":
		tracer().SetTraceLevel(tracing.LevelInfo)
	case "Error":
		tracer().SetTraceLevel(tracing.LevelError)
	default:
		tracer().Errorf("Invalid trace level: %s", *tlevel)
		os.Exit(5)
	}
	tracer().Infof("Trace level is %s", *tlevel)
	intp.REPL()
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	face     *otface.Face
	fontname string
	repl     *readline.Instance
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		args := strings.Fields(line)
		cmd, ok := commandFn[strings.ToLower(args[0])]
		if !ok {
			cmd = helpOp
		}
		err, quit := cmd(intp, args[1:])
		if err != nil {
			pterm.Error.Println(err)
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

var commandFn = map[string]func(*Intp, []string) (error, bool){
	"quit":     quitOp,
	"help":     helpOp,
	"info":     infoOp,
	"glyph":    glyphOp,
	"names":    namesOp,
	"advance":  advanceOp,
	"vadvance": vadvanceOp,
	"image":    imageOp,
	"emoji":    emojiOp,
}

func quitOp(intp *Intp, args []string) (error, bool) {
	pterm.Println("Goodbye!")
	return nil, true
}

func helpOp(intp *Intp, args []string) (error, bool) {
	pterm.Println(`commands:
  info              general face information
  glyph <char>      glyph index for a character
  names <gid>...    glyph names
  advance <gid>     horizontal advance in font units
  vadvance <gid>    vertical advance in font units
  image <gid> <ppem>  embedded image lookup
  emoji             does the face carry embedded images?
  quit              exit`)
	return nil, false
}

func infoOp(intp *Intp, args []string) (error, bool) {
	pterm.Printf("font:       %s\n", intp.fontname)
	pterm.Printf("glyphs:     %d\n", intp.face.NumGlyphs())
	pterm.Printf("encoding:   %s\n", intp.face.Encoding())
	pterm.Printf("outlines:   %s\n", intp.face.Outline())
	if upem, ok := intp.face.UnitsPerEm().Unwrap(); ok {
		pterm.Printf("units/em:   %d\n", upem)
	}
	pterm.Printf("ascent:     %d\n", intp.face.Ascent())
	pterm.Printf("descent:    %d\n", intp.face.Descent())
	pterm.Printf("line gap:   %d\n", intp.face.LineGap())
	return nil, false
}

func glyphOp(intp *Intp, args []string) (error, bool) {
	if len(args) != 1 {
		return fmt.Errorf("usage: glyph <char>"), false
	}
	r, _ := utf8.DecodeRuneInString(args[0])
	gid := intp.face.GlyphIndex(uint32(r))
	pterm.Printf("'%c' (U+%04X) -> glyph %d\n", r, r, gid)
	return nil, false
}

func namesOp(intp *Intp, args []string) (error, bool) {
	ids, err := parseGlyphIDs(args)
	if err != nil {
		return err, false
	}
	for i, name := range intp.face.GlyphNames(ids) {
		pterm.Printf("glyph %4d  %s\n", ids[i], name)
	}
	return nil, false
}

func advanceOp(intp *Intp, args []string) (error, bool) {
	ids, err := parseGlyphIDs(args)
	if err != nil {
		return err, false
	}
	for _, gid := range ids {
		if adv, ok := intp.face.HorizontalAdvance(gid).Unwrap(); ok {
			pterm.Printf("glyph %4d  advance %d\n", gid, adv)
		} else {
			pterm.Printf("glyph %4d  no advance\n", gid)
		}
	}
	return nil, false
}

func vadvanceOp(intp *Intp, args []string) (error, bool) {
	ids, err := parseGlyphIDs(args)
	if err != nil {
		return err, false
	}
	for _, gid := range ids {
		if adv, ok := intp.face.VerticalAdvance(gid).Unwrap(); ok {
			pterm.Printf("glyph %4d  vertical advance %d\n", gid, adv)
		} else {
			pterm.Printf("glyph %4d  no vertical metrics\n", gid)
		}
	}
	return nil, false
}

func imageOp(intp *Intp, args []string) (error, bool) {
	if len(args) != 2 {
		return fmt.Errorf("usage: image <gid> <ppem>"), false
	}
	gid, err := strconv.ParseUint(args[0], 10, 16)
	if err != nil {
		return err, false
	}
	ppem, err := strconv.ParseUint(args[1], 10, 16)
	if err != nil {
		return err, false
	}
	glyph, err := intp.face.LookupGlyphImage(ot.GlyphIndex(gid), uint16(ppem), otbitmap.BitDepth32)
	if err != nil {
		return err, false
	}
	if g, ok := glyph.Unwrap(); ok {
		pterm.Printf("glyph %d: %s image, %d bytes, %d ppem\n",
			gid, g.Format, len(g.Data), g.PPEMX)
	} else {
		pterm.Printf("glyph %d has no embedded image\n", gid)
	}
	return nil, false
}

func emojiOp(intp *Intp, args []string) (error, bool) {
	if intp.face.SupportsEmoji() {
		pterm.Println("face carries embedded images")
	} else {
		pterm.Println("face has no embedded images")
	}
	return nil, false
}

func parseGlyphIDs(args []string) ([]ot.GlyphIndex, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("expected glyph ids")
	}
	ids := make([]ot.GlyphIndex, len(args))
	for i, arg := range args {
		gid, err := strconv.ParseUint(arg, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("not a glyph id: %q", arg)
		}
		ids[i] = ot.GlyphIndex(gid)
	}
	return ids, nil
}

// --- Font Loading -----------------------------------------------------

func (intp *Intp) loadFont(fontname string) error {
	f, err := fontload.LoadOpenTypeFont(fontname)
	if err != nil {
		tracer().Errorf("cannot load font %s: %s", fontname, err)
		return err
	}
	tracer().Infof("loaded SFNT font = %s", f.Fontname)
	provider, err := f.Provider()
	if err != nil {
		return err
	}
	pterm.Printf("font tables: %v\n", fontload.Tags(provider))
	faceOpt, err := otface.New(provider)
	if err != nil {
		return err
	}
	face, ok := faceOpt.Unwrap()
	if !ok {
		return fmt.Errorf("font %s has no usable character map", fontname)
	}
	intp.face = face
	intp.fontname = f.Fontname
	return nil
}
