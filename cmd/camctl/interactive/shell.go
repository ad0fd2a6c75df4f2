// Package interactive provides the interactive command-line interface
// for camctl.
package interactive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"time"

	"github.com/chzyer/readline"

	"github.com/aerolens/camsync/pkg/camera"
	"github.com/aerolens/camsync/pkg/interaction"
)

// DefaultTimeout bounds how long a command waits for the session.
const DefaultTimeout = 2 * time.Second

// Shell runs camctl commands against a camera session.
type Shell struct {
	rl      *readline.Instance
	out     io.Writer
	session *interaction.Session
	timeout time.Duration
	watch   atomic.Bool
}

// New creates a shell reading commands from the terminal.
func New() (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "camera> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	s := newShell(rl.Stdout())
	s.rl = rl
	return s, nil
}

func newShell(out io.Writer) *Shell {
	return &Shell{out: out, timeout: DefaultTimeout}
}

// Stderr returns a writer that properly coordinates with the readline input.
// Use this for log output to avoid interfering with the command prompt.
func (s *Shell) Stderr() io.Writer {
	return s.rl.Stderr()
}

// Attach binds the shell to a session. Camera changes are printed while
// watching is enabled.
func (s *Shell) Attach(session *interaction.Session) {
	s.session = session
	session.OnChange(func(c *camera.Camera) {
		if s.watch.Load() {
			printStatus(s.out, c)
		}
	})
}

// Run starts the interactive command loop.
func (s *Shell) Run(ctx context.Context, cancel context.CancelFunc) {
	defer s.rl.Close()

	printHelp(s.out)

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.session.Done():
			fmt.Fprintln(s.out, "Camera link closed")
			cancel()
			return
		default:
		}

		line, err := s.rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(s.out, "Exiting...")
			cancel()
			return
		}

		if s.Exec(ctx, line) {
			fmt.Fprintln(s.out, "Exiting...")
			cancel()
			return
		}
	}
}

// Exec runs one command line. It returns true when the line asks to quit.
func (s *Shell) Exec(ctx context.Context, line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return false
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	var err error
	switch cmd {
	case "help", "?":
		printHelp(s.out)
	case "show", "s":
		err = s.cmdShow(ctx, args)
	case "mode":
		err = s.cmdMode(ctx, args)
	case "ev":
		err = s.cmdEV(ctx, args)
	case "hdr", "autorecord":
		err = s.cmdToggle(ctx, cmd, args)
	case "exposure", "exp":
		err = s.cmdExposure(ctx, args)
	case "wb":
		err = s.cmdWhiteBalance(ctx, args)
	case "photo":
		err = s.cmdPhoto(ctx, args)
	case "rec":
		err = s.cmdRecording(ctx, args)
	case "style":
		err = s.cmdStyle(ctx, args)
	case "align":
		err = s.cmdAlign(ctx, args)
	case "lock":
		err = s.cmdLock(ctx, args)
	case "zoom":
		err = s.cmdZoom(ctx, args)
	case "shoot", "record":
		err = s.cmdCapture(ctx, cmd, args)
	case "watch":
		err = s.cmdWatch(args)
	case "quit", "exit", "q":
		return true
	default:
		fmt.Fprintf(s.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}

	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
	}
	return false
}

var errNotPublished = errors.New("camera not connected yet")

// do runs fn on the session goroutine once the camera is published.
func (s *Shell) do(ctx context.Context, fn func(*camera.Camera) error) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var result error
	err := s.session.Do(ctx, func(c *camera.Camera) {
		if !c.IsPublished() {
			result = errNotPublished
			return
		}
		result = fn(c)
	})
	if err != nil {
		return err
	}
	return result
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, `
Camera Commands:
  Inspection:
    show [section]                    - Show settings (camera, exposure, wb, photo,
                                        rec, style, align, locks, zoom)
    watch on|off                      - Print a status line on every change

  Camera:
    mode <MODE>                       - Set the camera mode (RECORDING, PHOTO)
    ev <EV>                           - Set EV compensation
    hdr on|off                        - Enable or disable auto HDR
    autorecord on|off                 - Enable or disable auto record
    shoot start|stop                  - Start or stop photo capture
    record start|stop                 - Start or stop recording

  Settings:
    exposure mode|shutter|iso|maxiso|metering <VALUE>
    exposure manual <SHUTTER> <ISO>   - Manual shutter speed and ISO
    exposure auto <MAXISO> <METERING> - Automatic exposure
    wb mode <MODE> | wb temp <TEMP>   - White balance
    photo mode|format|file|burst|bracketing <VALUE>
    photo timelapse|gpslapse <SECONDS>
    rec mode|res|fps|hyperlapse <VALUE>
    style <STYLE>                     - Select a style preset
    style saturation|contrast|sharpness <N>
    align yaw|pitch|roll <DEGREES>    - Adjust alignment offsets
    align reset                       - Reset alignment offsets
    lock exposure current|none        - Lock exposure on current values or unlock
    lock exposure region <X> <Y>      - Lock exposure on an image region
    lock wb on|off                    - Lock or unlock white balance
    zoom level|velocity <TARGET>      - Control zoom
    zoom speed <RATIO>                - Set the maximum zoom speed
    zoom degrade on|off               - Allow lossy zoom levels

  General:
    help                              - Show this help
    quit                              - Exit camctl

Values are enum names, matched case-insensitively (e.g. iso_400).`)
}
