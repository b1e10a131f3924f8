package xlate

import (
	"context"
	"fmt"
	"strings"

	"github.com/viant/xlate/internal/debug"
	"github.com/viant/xlate/internal/log"
)

// DebugCmd toggles or inspects the persisted debug mode.
// Usage: xlate debug on|off|status
type DebugCmd struct {
	Override bool `long:"override" description:"let an elevated mode enable status reporting"`
	Args     struct {
		Action string `positional-arg-name:"action" description:"on|off|status"`
	} `positional-args:"yes" required:"yes"`
}

func (d *DebugCmd) Execute(_ []string) error {
	ctx := context.Background()
	rt, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(d.Args.Action)) {
	case "on", "enable", "true":
		return d.setMode(ctx, rt.gate, true)
	case "off", "disable", "false":
		return d.setMode(ctx, rt.gate, false)
	case "status":
		fmt.Fprintln(stdout, describe(rt.gate.Decide(ctx, d.Override)))
		return nil
	default:
		return fmt.Errorf("unsupported debug action: %v, expected on|off|status", d.Args.Action)
	}
}

func (d *DebugCmd) setMode(ctx context.Context, gate *debug.Gate, enable bool) error {
	message := gate.SetMode(ctx, enable)
	log.Publish(log.DebugToggle, message)
	fmt.Fprintln(stdout, message)
	return nil
}

func describe(decision debug.Decision) string {
	state := "disabled"
	if decision.Enabled {
		state = "enabled"
	}
	text := fmt.Sprintf("Debug mode %s (%s)", state, decision.Source)
	if decision.Healed {
		text += ", expired record reset"
	}
	if decision.Degraded != "" {
		text += ", " + decision.Degraded
	}
	return text
}
