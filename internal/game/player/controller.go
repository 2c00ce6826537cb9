package player

import (
	"math"

	"go.uber.org/zap"

	"github.com/timberline-game/timberline/internal/game/damage"
	"github.com/timberline-game/timberline/internal/game/geo"
	"github.com/timberline-game/timberline/internal/game/scene"
)

// jumpDeadband is the vertical speed window, in units per second, inside
// which the player counts as standing still for jump purposes. Blocks
// bounce-chaining off physics micro-motion.
const jumpDeadband = 0.05

// MovementConfig holds the locomotion tuning for the player.
type MovementConfig struct {
	// BaseSpeed is the walking speed in units per second.
	BaseSpeed float64
	// SprintMultiplier scales BaseSpeed while sprint is held.
	SprintMultiplier float64
	// Acceleration drives the exponential blend toward the target velocity;
	// the per-tick factor is min(1, Acceleration*dt).
	Acceleration float64
	// Damping drives the drift-to-stop decay with no directional input; the
	// per-tick factor is max(0, 1 - Damping*dt).
	Damping float64
	// JumpStrength is the vertical velocity set on a jump.
	JumpStrength float64
	// Gravity is the downward acceleration applied while airborne.
	Gravity float64
	// EyeHeight is the camera height above the player's position, the origin
	// of attack raycasts.
	EyeHeight float64
	// GroundProbe is the downward probe distance for grounded detection.
	GroundProbe float64
}

// toolObserver pairs a tool-changed callback with its registration ID.
type toolObserver struct {
	id int
	fn func(index int)
}

// ToolDisplay is the rendering-side hook for tool visuals. Show and Hide are
// called with loadout indices as the active tool changes.
type ToolDisplay interface {
	ShowTool(index int)
	HideTool(index int)
}

// Controller owns the player's movement state and resolves combat actions.
//
// Not safe for concurrent use: Tick, SelectTool, and PrimaryAction run on the
// single session tick thread.
type Controller struct {
	scene    scene.Scene
	registry *damage.Registry
	cfg      MovementConfig
	logger   *zap.Logger

	handle     scene.Handle
	horizontal geo.Vec2
	vertical   float64

	tools      []*Tool
	activeTool int
	cooldown   float64
	display    ToolDisplay
	observers  []toolObserver
	nextObsID  int
}

// NewController creates a Controller for the player object at handle.
//
// Precondition: sc and reg must be non-nil; tools must be non-empty and each
// must have passed Validate(); handle must refer to a live scene object.
// A nil logger is replaced with a no-op.
func NewController(sc scene.Scene, reg *damage.Registry, cfg MovementConfig, tools []*Tool, handle scene.Handle, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		scene:    sc,
		registry: reg,
		cfg:      cfg,
		logger:   logger,
		handle:   handle,
		tools:    tools,
	}
}

// SetToolDisplay attaches the rendering-side tool visuals hook and shows the
// active tool. Pass nil to detach.
func (c *Controller) SetToolDisplay(d ToolDisplay) {
	c.display = d
	if d != nil {
		d.ShowTool(c.activeTool)
	}
}

// Tick advances the player by dt seconds using the given input snapshot:
// blend horizontal velocity toward the input-derived target, resolve jumping
// and gravity against the ground probe, decay the fire cooldown, and apply
// the resulting displacement through the scene.
func (c *Controller) Tick(dt float64, in Input) {
	wish := wishDirection(in)
	target := wish.Scale(c.targetSpeed(in))

	blend := math.Min(1, c.cfg.Acceleration*dt)
	c.horizontal = c.horizontal.Add(target.Sub(c.horizontal).Scale(blend))
	if !in.hasDirection() {
		decay := math.Max(0, 1-c.cfg.Damping*dt)
		c.horizontal = c.horizontal.Scale(decay)
	}

	// A climbing player is airborne even while the ground probe still sees
	// the launch surface under their feet; otherwise the first jump tick at a
	// fine step would be read back as standing and cancelled.
	grounded := c.vertical <= jumpDeadband && c.scene.Grounded(c.handle, c.cfg.GroundProbe)
	switch {
	case !grounded:
		c.vertical -= c.cfg.Gravity * dt
	case in.Jump && math.Abs(c.vertical) < jumpDeadband:
		c.vertical = c.cfg.JumpStrength
	default:
		// Suppress physics micro-bounce while standing.
		c.vertical = 0
	}

	if c.cooldown > 0 {
		c.cooldown -= dt
		if c.cooldown < 0 {
			c.cooldown = 0
		}
	}

	delta := geo.Vec3{
		X: c.horizontal.X * dt,
		Y: c.vertical * dt,
		Z: c.horizontal.Z * dt,
	}
	c.scene.Move(c.handle, delta)
}

// targetSpeed returns the desired horizontal speed for the input.
func (c *Controller) targetSpeed(in Input) float64 {
	speed := c.cfg.BaseSpeed
	if in.Sprint {
		speed *= c.cfg.SprintMultiplier
	}
	return speed
}

// wishDirection converts the directional keys into a unit vector in world
// space, rotated by the facing yaw. Zero when no key is held.
func wishDirection(in Input) geo.Vec2 {
	var local geo.Vec2
	if in.Forward {
		local.Z++
	}
	if in.Back {
		local.Z--
	}
	if in.Right {
		local.X++
	}
	if in.Left {
		local.X--
	}
	local = local.Normalized()
	if local.IsZero() {
		return local
	}
	sin, cos := math.Sin(in.Yaw), math.Cos(in.Yaw)
	return geo.Vec2{
		X: local.X*cos + local.Z*sin,
		Z: -local.X*sin + local.Z*cos,
	}
}

// SelectTool switches the active tool to index, clamped to the loadout
// range. Out-of-range input is therefore never an error. Selecting the
// already-active tool is a no-op; otherwise the previous tool's visual is
// hidden, the new one shown, and tool-changed observers run in registration
// order.
func (c *Controller) SelectTool(index int) {
	if len(c.tools) == 0 {
		return
	}
	if index < 0 {
		index = 0
	}
	if index >= len(c.tools) {
		index = len(c.tools) - 1
	}
	if index == c.activeTool {
		return
	}
	prev := c.activeTool
	c.activeTool = index
	if c.display != nil {
		c.display.HideTool(prev)
		c.display.ShowTool(index)
	}
	for _, obs := range c.observers {
		obs.fn(index)
	}
}

// OnToolChanged registers fn to run synchronously after every tool switch,
// in registration order. The returned function deregisters fn.
func (c *Controller) OnToolChanged(fn func(index int)) func() {
	id := c.nextObsID
	c.nextObsID++
	c.observers = append(c.observers, toolObserver{id: id, fn: fn})
	return func() {
		for i, obs := range c.observers {
			if obs.id == id {
				c.observers = append(c.observers[:i], c.observers[i+1:]...)
				return
			}
		}
	}
}

// PrimaryAction resolves a primary-fire input with the active tool. Melee
// tools raycast and apply damage on every call; ranged tools are dropped
// while the cooldown runs and otherwise consume a full fire interval whether
// or not the shot lands. fired is false when the input was swallowed by the
// cooldown or the ray hit nothing.
//
// Postcondition: when the target died, its scene object has been destroyed
// and the economy already holds the rewards.
func (c *Controller) PrimaryAction(in Input) (out damage.Outcome, fired bool) {
	tool := c.tools[c.activeTool]
	if tool.Class == ClassRanged {
		if c.cooldown > 0 {
			return damage.Outcome{}, false
		}
		c.cooldown = tool.FireInterval
	}

	origin, dir := c.aim(in)
	hit, ok := c.scene.Raycast(origin, dir, tool.Reach, c.handle)
	if !ok {
		return damage.Outcome{}, false
	}

	out = c.registry.ApplyDamage(hit.Handle, tool.Damage, tool.Category)
	if out.Died {
		c.scene.Destroy(hit.Handle)
		c.logger.Debug("destroyed target",
			zap.String("handle", string(hit.Handle)),
			zap.String("tool", tool.ID),
		)
	}
	return out, true
}

// aim returns the eye-height ray origin and unit facing direction for the
// input snapshot.
func (c *Controller) aim(in Input) (origin, dir geo.Vec3) {
	pos, _ := c.scene.Position(c.handle)
	origin = pos.Add(geo.Vec3{Y: c.cfg.EyeHeight})
	cosPitch := math.Cos(in.Pitch)
	dir = geo.Vec3{
		X: math.Sin(in.Yaw) * cosPitch,
		Y: math.Sin(in.Pitch),
		Z: math.Cos(in.Yaw) * cosPitch,
	}
	return origin, dir
}

// ActiveTool returns the index of the active tool.
func (c *Controller) ActiveTool() int {
	return c.activeTool
}

// Tools returns the ordered loadout.
func (c *Controller) Tools() []*Tool {
	return c.tools
}

// CooldownRemaining returns the seconds left on the ranged fire cooldown.
func (c *Controller) CooldownRemaining() float64 {
	return c.cooldown
}

// Velocity returns the current horizontal velocity and vertical speed.
func (c *Controller) Velocity() (geo.Vec2, float64) {
	return c.horizontal, c.vertical
}

// Handle returns the player's scene handle.
func (c *Controller) Handle() scene.Handle {
	return c.handle
}
