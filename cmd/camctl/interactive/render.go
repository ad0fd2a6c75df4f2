package interactive

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aerolens/camsync/pkg/camera"
	"github.com/aerolens/camsync/pkg/capability"
)

type section struct {
	name   string
	render func(io.Writer, *camera.Camera)
}

var sections = []section{
	{"camera", renderCamera},
	{"exposure", renderExposure},
	{"wb", renderWhiteBalance},
	{"photo", renderPhoto},
	{"rec", renderRecording},
	{"style", renderStyle},
	{"align", renderAlignment},
	{"locks", renderLocks},
	{"zoom", renderZoom},
}

func (s *Shell) cmdShow(ctx context.Context, args []string) error {
	selected := sections
	if len(args) > 0 {
		selected = nil
		for _, sec := range sections {
			if strings.EqualFold(sec.name, args[0]) {
				selected = append(selected, sec)
			}
		}
		if len(selected) == 0 {
			names := make([]string, len(sections))
			for i, sec := range sections {
				names[i] = sec.name
			}
			return fmt.Errorf("unknown section %q (one of %s)", args[0], strings.Join(names, ", "))
		}
	}

	return s.do(ctx, func(c *camera.Camera) error {
		for _, sec := range selected {
			sec.render(s.out, c)
		}
		return nil
	})
}

// printStatus writes a one-line summary of the camera state.
func printStatus(w io.Writer, c *camera.Camera) {
	if !c.IsPublished() {
		fmt.Fprintln(w, "[camera] not connected")
		return
	}
	photo, count, _ := c.PhotoState()
	rec, _ := c.RecordingState()
	fmt.Fprintf(w, "[camera] mode=%s iso=%s shutter=%s wb=%s photo=%s(%d) rec=%s\n",
		c.Mode().Get(), c.Exposure().ISO(), c.Exposure().ShutterSpeed(),
		c.WhiteBalance().Mode(), photo, count, rec)
}

func header(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s:\n", title)
	fmt.Fprintln(w, "-------------------------------------------")
}

func updating(b bool) string {
	if b {
		return " (updating)"
	}
	return ""
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func supported[E camera.Enum](set capability.Set[E]) string {
	if set.IsEmpty() {
		return "-"
	}
	return joinNames(set.Sorted())
}

func renderCamera(w io.Writer, c *camera.Camera) {
	header(w, "Camera")
	fmt.Fprintf(w, "  Mode:          %s%s\n", c.Mode().Get(), updating(c.Mode().IsUpdating()))
	fmt.Fprintf(w, "    supported:   %s\n", supported(c.Mode().Available()))
	fmt.Fprintf(w, "  EV:            %s%s\n", c.EVCompensation().Get(), updating(c.EVCompensation().IsUpdating()))
	if c.AutoHDR().IsSupported() {
		fmt.Fprintf(w, "  Auto HDR:      %s%s (active: %s)\n",
			onOff(c.AutoHDR().IsEnabled()), updating(c.AutoHDR().IsUpdating()), onOff(c.IsHDRActive()))
	}
	if c.AutoRecord().IsSupported() {
		fmt.Fprintf(w, "  Auto record:   %s%s\n", onOff(c.AutoRecord().IsEnabled()), updating(c.AutoRecord().IsUpdating()))
	}
	fmt.Fprintf(w, "  Active:        %s\n", onOff(c.IsActive()))

	photo, count, photoMedia := c.PhotoState()
	fmt.Fprintf(w, "  Photo:         %s (%d taken)", photo, count)
	if photoMedia != "" {
		fmt.Fprintf(w, " last %s", photoMedia)
	}
	fmt.Fprintln(w)

	rec, recMedia := c.RecordingState()
	fmt.Fprintf(w, "  Recording:     %s", rec)
	if recMedia != "" {
		fmt.Fprintf(w, " last %s", recMedia)
	}
	fmt.Fprintln(w)
}

func renderExposure(w io.Writer, c *camera.Camera) {
	e := c.Exposure()
	header(w, "Exposure"+updating(e.IsUpdating()))
	fmt.Fprintf(w, "  Mode:          %s\n", e.Mode())
	fmt.Fprintf(w, "  Shutter:       %s\n", e.ShutterSpeed())
	fmt.Fprintf(w, "  ISO:           %s (max %s)\n", e.ISO(), e.MaxISO())
	fmt.Fprintf(w, "  Metering:      %s\n", e.Metering())
	fmt.Fprintf(w, "    modes:       %s\n", supported(e.SupportedModes()))
	fmt.Fprintf(w, "    ISOs:        %s\n", supported(e.SupportedISOs()))
}

func renderWhiteBalance(w io.Writer, c *camera.Camera) {
	wb := c.WhiteBalance()
	header(w, "White Balance"+updating(wb.IsUpdating()))
	fmt.Fprintf(w, "  Mode:          %s\n", wb.Mode())
	fmt.Fprintf(w, "  Temperature:   %s\n", wb.Temperature())
	fmt.Fprintf(w, "    modes:       %s\n", supported(wb.SupportedModes()))
}

func renderPhoto(w io.Writer, c *camera.Camera) {
	p := c.Photo()
	header(w, "Photo"+updating(p.IsUpdating()))
	settings := p.Settings()
	fmt.Fprintf(w, "  Mode:          %s\n", settings.Mode)
	fmt.Fprintf(w, "  Format:        %s / %s\n", settings.Format, settings.FileFormat)
	switch settings.Mode {
	case camera.PhotoBurst:
		fmt.Fprintf(w, "  Burst:         %s\n", settings.Burst)
	case camera.PhotoBracketing:
		fmt.Fprintf(w, "  Bracketing:    %s\n", settings.Bracketing)
	case camera.PhotoTimelapse:
		fmt.Fprintf(w, "  Interval:      %gs\n", settings.TimelapseInterval)
	case camera.PhotoGpslapse:
		fmt.Fprintf(w, "  Interval:      %gm\n", settings.GpslapseInterval)
	}
	fmt.Fprintf(w, "    modes:       %s\n", supported(p.SupportedModes()))
	fmt.Fprintf(w, "    formats:     %s\n", supported(p.SupportedFormats()))
	fmt.Fprintf(w, "    files:       %s\n", supported(p.SupportedFileFormats()))
	fmt.Fprintf(w, "    HDR:         %s\n", onOff(p.IsHDRAvailable()))
}

func renderRecording(w io.Writer, c *camera.Camera) {
	r := c.Recording()
	header(w, "Recording"+updating(r.IsUpdating()))
	settings := r.Settings()
	fmt.Fprintf(w, "  Mode:          %s\n", settings.Mode)
	fmt.Fprintf(w, "  Resolution:    %s @ %s\n", settings.Resolution, settings.Framerate)
	if settings.Mode == camera.RecordingHyperlapse {
		fmt.Fprintf(w, "  Hyperlapse:    %s\n", settings.Hyperlapse)
	}
	if r.Bitrate() > 0 {
		fmt.Fprintf(w, "  Bitrate:       %d bit/s\n", r.Bitrate())
	}
	fmt.Fprintf(w, "    modes:       %s\n", supported(r.SupportedModes()))
	fmt.Fprintf(w, "    resolutions: %s\n", supported(r.SupportedResolutions()))
	fmt.Fprintf(w, "    framerates:  %s\n", supported(r.SupportedFramerates()))
	fmt.Fprintf(w, "    HDR:         %s\n", onOff(r.IsHDRAvailable()))
}

func renderStyle(w io.Writer, c *camera.Camera) {
	st := c.Style()
	header(w, "Style"+updating(st.IsUpdating()))
	fmt.Fprintf(w, "  Style:         %s\n", st.Style())
	for _, p := range camera.Values[camera.StyleParameter]() {
		bounds := st.ParameterBounds(p)
		fmt.Fprintf(w, "  %-14s %d [%d, %d]\n", strings.ToLower(p.String())+":", st.Parameter(p), bounds.Min, bounds.Max)
	}
}

func renderAlignment(w io.Writer, c *camera.Camera) {
	a := c.Alignment()
	if a == nil {
		return
	}
	header(w, "Alignment"+updating(a.IsUpdating()))
	o := a.Offsets()
	fmt.Fprintf(w, "  Yaw:           %+.2f [%g, %g]\n", o.Yaw, a.YawRange().Min, a.YawRange().Max)
	fmt.Fprintf(w, "  Pitch:         %+.2f [%g, %g]\n", o.Pitch, a.PitchRange().Min, a.PitchRange().Max)
	fmt.Fprintf(w, "  Roll:          %+.2f [%g, %g]\n", o.Roll, a.RollRange().Min, a.RollRange().Max)
}

func renderLocks(w io.Writer, c *camera.Camera) {
	el, wl := c.ExposureLock(), c.WhiteBalanceLock()
	if el == nil && wl == nil {
		return
	}
	header(w, "Locks")
	if el != nil {
		state := el.State()
		fmt.Fprintf(w, "  Exposure:      %s%s", state.Mode, updating(el.IsUpdating()))
		if state.Mode == camera.ExposureLockRegion {
			fmt.Fprintf(w, " at (%.2f, %.2f) size %.2fx%.2f", state.CenterX, state.CenterY, state.Width, state.Height)
		}
		fmt.Fprintln(w)
	}
	if wl != nil {
		lockable := ""
		if !wl.IsLockable() {
			lockable = " (not lockable)"
		}
		fmt.Fprintf(w, "  White balance: %s%s%s\n", onOff(wl.IsLocked()), updating(wl.IsUpdating()), lockable)
	}
}

func renderZoom(w io.Writer, c *camera.Camera) {
	z := c.Zoom()
	if z == nil {
		return
	}
	header(w, "Zoom")
	fmt.Fprintf(w, "  Available:     %s\n", onOff(z.IsAvailable()))
	fmt.Fprintf(w, "  Level:         %.2f (lossless %.2f, lossy %.2f)\n",
		z.CurrentLevel(), z.MaxLosslessLevel(), z.MaxLossyLevel())
	fmt.Fprintf(w, "  Max speed:     %.2f%s\n", z.MaxSpeed().Get(), updating(z.MaxSpeed().IsUpdating()))
	fmt.Fprintf(w, "  Degradation:   %s%s\n",
		onOff(z.VelocityQualityDegradationAllowance().IsEnabled()),
		updating(z.VelocityQualityDegradationAllowance().IsUpdating()))
}
