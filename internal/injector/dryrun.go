package injector

import (
	"log/slog"
	"strconv"

	"github.com/WhiteMagic/macrod/internal/input"
)

// DryRun is a Backend that logs every event instead of injecting it.
// It is the default backend for deployments with no OS hook linked and
// doubles as a trace tool when debugging profiles.
type DryRun struct {
	log *slog.Logger
}

// NewDryRun creates a dry-run backend. A nil logger uses slog.Default.
func NewDryRun(log *slog.Logger) *DryRun {
	if log == nil {
		log = slog.Default()
	}
	return &DryRun{log: log}
}

func (d *DryRun) SendKeyDown(k input.Key) error {
	d.log.Info("inject key down", "key", k.String())
	return nil
}

func (d *DryRun) SendKeyUp(k input.Key) error {
	d.log.Info("inject key up", "key", k.String())
	return nil
}

func (d *DryRun) SendMouseDown(b input.MouseButton) error {
	d.log.Info("inject mouse down", "button", b.String())
	return nil
}

func (d *DryRun) SendMouseUp(b input.MouseButton) error {
	d.log.Info("inject mouse up", "button", b.String())
	return nil
}

func (d *DryRun) SendMouseMotion(dx, dy int) error {
	d.log.Info("inject mouse motion", "dx", dx, "dy", dy)
	return nil
}

func (d *DryRun) SendMouseWheel(steps int) error {
	d.log.Info("inject mouse wheel", "steps", steps)
	return nil
}

func (d *DryRun) Joystick(deviceID string) DeviceProxy {
	return &dryRunDevice{log: d.log, kind: "joystick", device: deviceID}
}

func (d *DryRun) VJoy(vjoyID int) DeviceProxy {
	return &dryRunDevice{log: d.log, kind: "vjoy", device: strconv.Itoa(vjoyID)}
}

type dryRunDevice struct {
	log    *slog.Logger
	kind   string
	device string
}

func (d *dryRunDevice) SetAxis(id int, value float64, mode input.AxisMode) error {
	d.log.Info("inject axis", "kind", d.kind, "device", d.device,
		"axis", id, "value", value, "mode", mode.String())
	return nil
}

func (d *dryRunDevice) SetButton(id int, pressed bool) error {
	d.log.Info("inject button", "kind", d.kind, "device", d.device,
		"button", id, "pressed", pressed)
	return nil
}

func (d *dryRunDevice) SetHat(id int, value int) error {
	d.log.Info("inject hat", "kind", d.kind, "device", d.device,
		"hat", id, "value", value)
	return nil
}
