package region

// Navigator turns pointer input on a width x height surface into region
// changes. While a drag is in progress the region is left alone and Offset
// reports how far the last frame should be shifted; releasing applies the
// pan and marks the region dirty.
type Navigator struct {
	State  State
	Width  int
	Height int

	dragging     bool
	lastX, lastY int
	offX, offY   int
	dirty        bool
}

func NewNavigator(s State, width, height int) *Navigator {
	return &Navigator{State: s, Width: width, Height: height, dirty: true}
}

func (n *Navigator) Press(x, y int) {
	n.dragging = true
	n.lastX, n.lastY = x, y
	n.offX, n.offY = 0, 0
}

func (n *Navigator) Move(x, y int) {
	if !n.dragging {
		return
	}
	n.offX += x - n.lastX
	n.offY += y - n.lastY
	n.lastX, n.lastY = x, y
}

func (n *Navigator) Release() {
	if !n.dragging {
		return
	}
	n.dragging = false
	if n.offX != 0 || n.offY != 0 {
		n.State.Bounds = n.State.Pan(float64(n.offX), float64(n.offY), n.Width, n.Height)
		n.dirty = true
	}
	n.offX, n.offY = 0, 0
}

// Scroll zooms around (x, y). Ignored while dragging.
func (n *Navigator) Scroll(delta float64, x, y int) {
	if n.dragging || delta == 0 {
		return
	}
	n.State.Bounds = n.State.Zoom(WheelFactor(delta), float64(x), float64(y), n.Width, n.Height)
	n.dirty = true
}

// ScaleIterations multiplies the cutoff by factor, keeping it at least 1.
func (n *Navigator) ScaleIterations(factor float64) {
	it := max(1, int(float64(n.State.MaxIterations)*factor))
	if it != n.State.MaxIterations {
		n.State.MaxIterations = it
		n.dirty = true
	}
}

func (n *Navigator) Dragging() bool { return n.dragging }

// Offset is the pixel shift of the pending drag.
func (n *Navigator) Offset() (dx, dy int) { return n.offX, n.offY }

// TakeDirty reports whether the region changed since the last call.
func (n *Navigator) TakeDirty() bool {
	d := n.dirty
	n.dirty = false
	return d
}
