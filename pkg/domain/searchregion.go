package domain

// SearchRegionOnObject declares that an object's search region is derived
// from another object's last match position. It is an immutable value built
// at configuration time; reconfiguration replaces it wholesale.
type SearchRegionOnObject struct {
	// TargetStateName and TargetObjectName identify the anchor. Both must be
	// non-empty for the dependency to register.
	TargetStateName  string
	TargetObjectName string
	TargetKind       ObjectKind

	Adjust RegionAdjustment
}

// RegionAdjustment transforms an anchor match region into the dependent's
// search region. The Add fields shift and grow the anchor region; AbsoluteW
// and AbsoluteH, when positive, replace the resulting dimension outright and
// take precedence over the relative delta for that dimension. Zero or
// negative absolute values mean "not set".
type RegionAdjustment struct {
	AddX int `mapstructure:"add_x" yaml:"add_x"`
	AddY int `mapstructure:"add_y" yaml:"add_y"`
	AddW int `mapstructure:"add_w" yaml:"add_w"`
	AddH int `mapstructure:"add_h" yaml:"add_h"`

	AbsoluteW int `mapstructure:"absolute_w" yaml:"absolute_w"`
	AbsoluteH int `mapstructure:"absolute_h" yaml:"absolute_h"`
}

// Apply computes the adjusted region from an anchor region. A zero-size
// absolute dimension cannot be requested: zero and negative values both read
// as unset, and the relative delta applies instead.
func (a RegionAdjustment) Apply(base Region) Region {
	out := Region{
		X: base.X + a.AddX,
		Y: base.Y + a.AddY,
		W: base.W + a.AddW,
		H: base.H + a.AddH,
	}
	if a.AbsoluteW > 0 {
		out.W = a.AbsoluteW
	}
	if a.AbsoluteH > 0 {
		out.H = a.AbsoluteH
	}
	return out
}
