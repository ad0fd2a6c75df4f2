package interactive

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/aerolens/camsync/pkg/camera"
)

var errRefused = errors.New("request not sent")

func usage(format string) error {
	return fmt.Errorf("usage: %s", format)
}

// parse looks up an enum value by name and lists the valid names when
// none matches.
func parse[E camera.Enum](arg string) (E, error) {
	v, err := camera.ParseEnum[E](arg)
	if err != nil {
		return v, fmt.Errorf("%w (one of %s)", err, joinNames(camera.Values[E]()))
	}
	return v, nil
}

func joinNames[E camera.Enum](values []E) string {
	names := make([]string, len(values))
	for i, v := range values {
		names[i] = v.String()
	}
	return strings.Join(names, ", ")
}

func parseSwitch(arg string) (bool, error) {
	switch strings.ToLower(arg) {
	case "on", "true", "1":
		return true, nil
	case "off", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("expected on or off, got %q", arg)
	}
}

func parseFloat(arg string) (float64, error) {
	v, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", arg)
	}
	return v, nil
}

func (s *Shell) cmdMode(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("mode <MODE>")
	}
	mode, err := parse[camera.Mode](args[0])
	if err != nil {
		return err
	}
	return s.do(ctx, func(c *camera.Camera) error {
		if !c.Mode().Available().Contains(mode) {
			return fmt.Errorf("mode %s not supported", mode)
		}
		c.Mode().Set(mode)
		return nil
	})
}

func (s *Shell) cmdEV(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("ev <EV>")
	}
	ev, err := parse[camera.EVCompensation](args[0])
	if err != nil {
		return err
	}
	return s.do(ctx, func(c *camera.Camera) error {
		if !c.EVCompensation().Available().Contains(ev) {
			return fmt.Errorf("EV compensation %s not supported", ev)
		}
		c.EVCompensation().Set(ev)
		return nil
	})
}

func (s *Shell) cmdToggle(ctx context.Context, cmd string, args []string) error {
	if len(args) != 1 {
		return usage(cmd + " on|off")
	}
	on, err := parseSwitch(args[0])
	if err != nil {
		return err
	}
	return s.do(ctx, func(c *camera.Camera) error {
		setting := c.AutoHDR()
		if cmd == "autorecord" {
			setting = c.AutoRecord()
		}
		if !setting.IsSupported() {
			return fmt.Errorf("%s not supported", cmd)
		}
		setting.SetEnabled(on)
		return nil
	})
}

func (s *Shell) cmdCapture(ctx context.Context, cmd string, args []string) error {
	if len(args) != 1 || (args[0] != "start" && args[0] != "stop") {
		return usage(cmd + " start|stop")
	}
	return s.do(ctx, func(c *camera.Camera) error {
		var ok bool
		switch cmd + " " + args[0] {
		case "shoot start":
			ok = c.StartPhotoCapture()
		case "shoot stop":
			ok = c.StopPhotoCapture()
		case "record start":
			ok = c.StartRecording()
		case "record stop":
			ok = c.StopRecording()
		}
		if !ok {
			return fmt.Errorf("cannot %s %s now", args[0], map[string]string{"shoot": "photo capture", "record": "recording"}[cmd])
		}
		return nil
	})
}

func (s *Shell) cmdExposure(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return usage("exposure mode|shutter|iso|maxiso|metering <VALUE>")
	}
	field, value := strings.ToLower(args[0]), args[1]

	var apply func(*camera.Exposure)
	switch field {
	case "mode":
		mode, err := parse[camera.ExposureMode](value)
		if err != nil {
			return err
		}
		apply = func(e *camera.Exposure) { e.SetMode(mode) }
	case "shutter":
		speed, err := parse[camera.ShutterSpeed](value)
		if err != nil {
			return err
		}
		apply = func(e *camera.Exposure) { e.SetShutterSpeed(speed) }
	case "iso":
		iso, err := parse[camera.ISOSensitivity](value)
		if err != nil {
			return err
		}
		apply = func(e *camera.Exposure) { e.SetISO(iso) }
	case "maxiso":
		iso, err := parse[camera.ISOSensitivity](value)
		if err != nil {
			return err
		}
		apply = func(e *camera.Exposure) { e.SetMaxISO(iso) }
	case "metering":
		metering, err := parse[camera.MeteringMode](value)
		if err != nil {
			return err
		}
		apply = func(e *camera.Exposure) { e.SetMetering(metering) }
	case "manual":
		if len(args) != 3 {
			return usage("exposure manual <SHUTTER> <ISO>")
		}
		speed, err := parse[camera.ShutterSpeed](args[1])
		if err != nil {
			return err
		}
		iso, err := parse[camera.ISOSensitivity](args[2])
		if err != nil {
			return err
		}
		apply = func(e *camera.Exposure) { e.SetManualMode(speed, iso) }
	case "auto":
		if len(args) != 3 {
			return usage("exposure auto <MAXISO> <METERING>")
		}
		maxISO, err := parse[camera.ISOSensitivity](args[1])
		if err != nil {
			return err
		}
		metering, err := parse[camera.MeteringMode](args[2])
		if err != nil {
			return err
		}
		apply = func(e *camera.Exposure) { e.SetAutoMode(maxISO, metering) }
	default:
		return usage("exposure mode|shutter|iso|maxiso|metering|manual|auto ...")
	}

	return s.do(ctx, func(c *camera.Camera) error {
		apply(c.Exposure())
		return nil
	})
}

func (s *Shell) cmdWhiteBalance(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usage("wb mode <MODE> | wb temp <TEMP>")
	}
	switch strings.ToLower(args[0]) {
	case "mode":
		mode, err := parse[camera.WhiteBalanceMode](args[1])
		if err != nil {
			return err
		}
		return s.do(ctx, func(c *camera.Camera) error {
			c.WhiteBalance().SetMode(mode)
			return nil
		})
	case "temp":
		t, err := parse[camera.Temperature](args[1])
		if err != nil {
			return err
		}
		return s.do(ctx, func(c *camera.Camera) error {
			c.WhiteBalance().SetTemperature(t)
			return nil
		})
	default:
		return usage("wb mode <MODE> | wb temp <TEMP>")
	}
}

func (s *Shell) cmdPhoto(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usage("photo mode|format|file|burst|bracketing|timelapse|gpslapse <VALUE>")
	}
	field, value := strings.ToLower(args[0]), args[1]

	var apply func(*camera.Photo)
	switch field {
	case "mode":
		mode, err := parse[camera.PhotoMode](value)
		if err != nil {
			return err
		}
		apply = func(p *camera.Photo) { p.SetMode(mode) }
	case "format":
		format, err := parse[camera.PhotoFormat](value)
		if err != nil {
			return err
		}
		apply = func(p *camera.Photo) { p.SetFormat(format) }
	case "file":
		fileFormat, err := parse[camera.PhotoFileFormat](value)
		if err != nil {
			return err
		}
		apply = func(p *camera.Photo) { p.SetFileFormat(fileFormat) }
	case "burst":
		burst, err := parse[camera.BurstValue](value)
		if err != nil {
			return err
		}
		apply = func(p *camera.Photo) { p.SetBurstValue(burst) }
	case "bracketing":
		bracketing, err := parse[camera.BracketingValue](value)
		if err != nil {
			return err
		}
		apply = func(p *camera.Photo) { p.SetBracketingValue(bracketing) }
	case "timelapse", "gpslapse":
		interval, err := parseFloat(value)
		if err != nil {
			return err
		}
		if field == "timelapse" {
			apply = func(p *camera.Photo) { p.SetTimelapseInterval(interval) }
		} else {
			apply = func(p *camera.Photo) { p.SetGpslapseInterval(interval) }
		}
	default:
		return usage("photo mode|format|file|burst|bracketing|timelapse|gpslapse <VALUE>")
	}

	return s.do(ctx, func(c *camera.Camera) error {
		apply(c.Photo())
		return nil
	})
}

func (s *Shell) cmdRecording(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usage("rec mode|res|fps|hyperlapse <VALUE>")
	}
	field, value := strings.ToLower(args[0]), args[1]

	var apply func(*camera.Recording)
	switch field {
	case "mode":
		mode, err := parse[camera.RecordingMode](value)
		if err != nil {
			return err
		}
		apply = func(r *camera.Recording) { r.SetMode(mode) }
	case "res":
		res, err := parse[camera.Resolution](value)
		if err != nil {
			return err
		}
		apply = func(r *camera.Recording) { r.SetResolution(res) }
	case "fps":
		fps, err := parse[camera.Framerate](value)
		if err != nil {
			return err
		}
		apply = func(r *camera.Recording) { r.SetFramerate(fps) }
	case "hyperlapse":
		h, err := parse[camera.HyperlapseValue](value)
		if err != nil {
			return err
		}
		apply = func(r *camera.Recording) { r.SetHyperlapseValue(h) }
	default:
		return usage("rec mode|res|fps|hyperlapse <VALUE>")
	}

	return s.do(ctx, func(c *camera.Camera) error {
		apply(c.Recording())
		return nil
	})
}

func (s *Shell) cmdStyle(ctx context.Context, args []string) error {
	switch len(args) {
	case 1:
		style, err := parse[camera.Style](args[0])
		if err != nil {
			return err
		}
		return s.do(ctx, func(c *camera.Camera) error {
			c.Style().SetStyle(style)
			return nil
		})
	case 2:
		param, err := parse[camera.StyleParameter](args[0])
		if err != nil {
			return err
		}
		value, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid integer %q", args[1])
		}
		return s.do(ctx, func(c *camera.Camera) error {
			c.Style().SetParameter(param, value)
			return nil
		})
	default:
		return usage("style <STYLE> | style saturation|contrast|sharpness <N>")
	}
}

func (s *Shell) cmdAlign(ctx context.Context, args []string) error {
	if len(args) == 1 && strings.EqualFold(args[0], "reset") {
		return s.do(ctx, func(c *camera.Camera) error {
			if c.Alignment() == nil {
				return errors.New("alignment not available")
			}
			if !c.Alignment().Reset() {
				return errRefused
			}
			return nil
		})
	}
	if len(args) != 2 {
		return usage("align yaw|pitch|roll <DEGREES> | align reset")
	}
	v, err := parseFloat(args[1])
	if err != nil {
		return err
	}
	axis := strings.ToLower(args[0])
	if axis != "yaw" && axis != "pitch" && axis != "roll" {
		return usage("align yaw|pitch|roll <DEGREES> | align reset")
	}
	return s.do(ctx, func(c *camera.Camera) error {
		a := c.Alignment()
		if a == nil {
			return errors.New("alignment not available")
		}
		switch axis {
		case "yaw":
			a.SetYaw(v)
		case "pitch":
			a.SetPitch(v)
		case "roll":
			a.SetRoll(v)
		}
		return nil
	})
}

func (s *Shell) cmdLock(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return usage("lock exposure current|none|region <X> <Y> | lock wb on|off")
	}
	switch strings.ToLower(args[0]) {
	case "exposure":
		return s.lockExposure(ctx, args[1:])
	case "wb":
		locked, err := parseSwitch(args[1])
		if err != nil {
			return err
		}
		return s.do(ctx, func(c *camera.Camera) error {
			l := c.WhiteBalanceLock()
			if l == nil {
				return errors.New("white balance lock not available")
			}
			if !l.IsLockable() {
				return errors.New("white balance lock not available in this mode")
			}
			l.SetLocked(locked)
			return nil
		})
	default:
		return usage("lock exposure current|none|region <X> <Y> | lock wb on|off")
	}
}

func (s *Shell) lockExposure(ctx context.Context, args []string) error {
	var apply func(*camera.ExposureLock)
	switch strings.ToLower(args[0]) {
	case "current":
		apply = (*camera.ExposureLock).LockCurrentValues
	case "none":
		apply = (*camera.ExposureLock).Unlock
	case "region":
		if len(args) != 3 {
			return usage("lock exposure region <X> <Y>")
		}
		x, err := parseFloat(args[1])
		if err != nil {
			return err
		}
		y, err := parseFloat(args[2])
		if err != nil {
			return err
		}
		apply = func(l *camera.ExposureLock) { l.LockOnRegion(x, y) }
	default:
		return usage("lock exposure current|none|region <X> <Y>")
	}
	return s.do(ctx, func(c *camera.Camera) error {
		if c.ExposureLock() == nil {
			return errors.New("exposure lock not available")
		}
		apply(c.ExposureLock())
		return nil
	})
}

func (s *Shell) cmdZoom(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usage("zoom level|velocity|speed <VALUE> | zoom degrade on|off")
	}

	var apply func(*camera.Zoom) error
	switch strings.ToLower(args[0]) {
	case "level", "velocity":
		mode, err := parse[camera.ZoomControlMode](args[0])
		if err != nil {
			return err
		}
		target, err := parseFloat(args[1])
		if err != nil {
			return err
		}
		apply = func(z *camera.Zoom) error {
			if !z.IsAvailable() {
				return errors.New("zoom not available now")
			}
			z.Control(mode, target)
			return nil
		}
	case "speed":
		speed, err := parseFloat(args[1])
		if err != nil {
			return err
		}
		apply = func(z *camera.Zoom) error {
			z.MaxSpeed().Set(speed)
			return nil
		}
	case "degrade":
		allowed, err := parseSwitch(args[1])
		if err != nil {
			return err
		}
		apply = func(z *camera.Zoom) error {
			z.VelocityQualityDegradationAllowance().SetEnabled(allowed)
			return nil
		}
	default:
		return usage("zoom level|velocity|speed <VALUE> | zoom degrade on|off")
	}

	return s.do(ctx, func(c *camera.Camera) error {
		if c.Zoom() == nil {
			return errors.New("zoom not available")
		}
		return apply(c.Zoom())
	})
}

func (s *Shell) cmdWatch(args []string) error {
	if len(args) != 1 {
		return usage("watch on|off")
	}
	on, err := parseSwitch(args[0])
	if err != nil {
		return err
	}
	s.watch.Store(on)
	return nil
}
