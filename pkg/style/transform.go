package style

// TransformKind discriminates transform operations for blend matching.
type TransformKind int

const (
	KindTranslate TransformKind = iota
	KindScale
	KindRotate
)

// TransformOp is one operation in a transform list.
//
// Blend interpolates from the given operation toward the receiver at position
// t. A nil from operation stands for the identity of the receiver's kind, so
// operations can fade in from nothing.
type TransformOp interface {
	Kind() TransformKind
	Blend(from TransformOp, t float64) TransformOp
	// Identity returns the no-op operation of the same kind, used to blend a
	// surplus operation out of a mismatched list tail.
	Identity() TransformOp
	EqualOp(o TransformOp) bool
}

// Translate moves by X and Y.
type Translate struct {
	X Length
	Y Length
}

func (op Translate) Kind() TransformKind { return KindTranslate }

func (op Translate) Identity() TransformOp { return Translate{X: Px(0), Y: Px(0)} }

func (op Translate) Blend(from TransformOp, t float64) TransformOp {
	f, ok := from.(Translate)
	if !ok {
		f = op.Identity().(Translate)
	}
	return Translate{X: op.X.Blend(f.X, t), Y: op.Y.Blend(f.Y, t)}
}

func (op Translate) EqualOp(o TransformOp) bool {
	other, ok := o.(Translate)
	return ok && op == other
}

// Scale scales by X and Y factors.
type Scale struct {
	X float64
	Y float64
}

func (op Scale) Kind() TransformKind { return KindScale }

func (op Scale) Identity() TransformOp { return Scale{X: 1, Y: 1} }

func (op Scale) Blend(from TransformOp, t float64) TransformOp {
	f, ok := from.(Scale)
	if !ok {
		f = op.Identity().(Scale)
	}
	return Scale{
		X: f.X + (op.X-f.X)*t,
		Y: f.Y + (op.Y-f.Y)*t,
	}
}

func (op Scale) EqualOp(o TransformOp) bool {
	other, ok := o.(Scale)
	return ok && op == other
}

// Rotate rotates by an angle in degrees.
type Rotate struct {
	Deg float64
}

func (op Rotate) Kind() TransformKind { return KindRotate }

func (op Rotate) Identity() TransformOp { return Rotate{} }

func (op Rotate) Blend(from TransformOp, t float64) TransformOp {
	f, ok := from.(Rotate)
	if !ok {
		f = Rotate{}
	}
	return Rotate{Deg: f.Deg + (op.Deg-f.Deg)*t}
}

func (op Rotate) EqualOp(o TransformOp) bool {
	other, ok := o.(Rotate)
	return ok && op == other
}

// Transform is an ordered list of operations. An empty list is the identity.
type Transform []TransformOp

// Equal reports whether two transform lists are operation-wise identical.
func (tr Transform) Equal(o Transform) bool {
	if len(tr) != len(o) {
		return false
	}
	for i := range tr {
		if !tr[i].EqualOp(o[i]) {
			return false
		}
	}
	return true
}

// BlendTransforms interpolates two transform lists. Operations are blended
// pairwise while kinds match by position; a mismatched or missing entry is
// blended one-sided against its identity.
func BlendTransforms(from, to Transform, t float64) Transform {
	size := len(from)
	if len(to) > size {
		size = len(to)
	}
	result := make(Transform, 0, size)
	for i := 0; i < size; i++ {
		var fromOp, toOp TransformOp
		if i < len(from) {
			fromOp = from[i]
		}
		if i < len(to) {
			toOp = to[i]
		}
		switch {
		case toOp != nil:
			result = append(result, toOp.Blend(fromOp, t))
		case fromOp != nil:
			// Surplus source entry: fade toward identity.
			result = append(result, fromOp.Identity().Blend(fromOp, t))
		}
	}
	return result
}
