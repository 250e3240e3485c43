package tetracull

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/solarlune/tetracull/log"
)

const (
	TrackTypePosition = "Pos"
	TrackTypeScale    = "Sca"
	TrackTypeRotation = "Rot"
)

// Keyframe is a single value in an AnimationTrack. Position and scale tracks store a Vector3; rotation tracks store a Quaternion.
type Keyframe struct {
	Time     float32
	Position Vector3
	Rotation Quaternion
}

// AnimationTrack is a sequence of keyframes animating a single property of a node.
type AnimationTrack struct {
	Type      string
	Keyframes []Keyframe
	Easing    ease.TweenFunc // How values are interpolated between two keyframes; defaults to ease.Linear.
}

func newAnimationTrack(trackType string) *AnimationTrack {
	return &AnimationTrack{
		Type:      trackType,
		Keyframes: []Keyframe{},
		Easing:    ease.Linear,
	}
}

// AddVectorKeyframe adds a keyframe holding a position or scale to the track. Keyframes must be added in time order.
func (track *AnimationTrack) AddVectorKeyframe(time float32, value Vector3) {
	track.Keyframes = append(track.Keyframes, Keyframe{Time: time, Position: value})
}

// AddQuaternionKeyframe adds a keyframe holding a rotation to the track. Keyframes must be added in time order.
func (track *AnimationTrack) AddQuaternionKeyframe(time float32, value Quaternion) {
	track.Keyframes = append(track.Keyframes, Keyframe{Time: time, Rotation: value})
}

// span returns the two keyframes surrounding the time given, and how far between them (0 to 1) the time lies, eased.
func (track *AnimationTrack) span(time float32) (Keyframe, Keyframe, float32) {

	first := track.Keyframes[0]
	last := track.Keyframes[len(track.Keyframes)-1]

	if time <= first.Time {
		return first, first, 0
	} else if time >= last.Time {
		return last, last, 0
	}

	for i := 1; i < len(track.Keyframes); i++ {

		if track.Keyframes[i].Time >= time {
			first = track.Keyframes[i-1]
			last = track.Keyframes[i]
			break
		}

	}

	easing := track.Easing
	if easing == nil {
		easing = ease.Linear
	}

	return first, last, easing(time-first.Time, 0, 1, last.Time-first.Time)

}

// ValueAsVector returns the track's interpolated position or scale at the time given. The bool is false for an empty track.
func (track *AnimationTrack) ValueAsVector(time float32) (Vector3, bool) {

	if len(track.Keyframes) == 0 {
		return Vector3{}, false
	}

	first, last, t := track.span(time)
	return first.Position.Lerp(last.Position, t), true

}

// ValueAsQuaternion returns the track's interpolated rotation at the time given. The bool is false for an empty track.
func (track *AnimationTrack) ValueAsQuaternion(time float32) (Quaternion, bool) {

	if len(track.Keyframes) == 0 {
		return Quaternion{}, false
	}

	first, last, t := track.span(time)
	return first.Rotation.Slerp(last.Rotation, t), true

}

// AnimationChannel holds the tracks animating a single node, found by name.
type AnimationChannel struct {
	Name   string
	Tracks map[string]*AnimationTrack
}

func NewAnimationChannel(name string) *AnimationChannel {
	return &AnimationChannel{
		Name:   name,
		Tracks: map[string]*AnimationTrack{},
	}
}

func (channel *AnimationChannel) AddTrack(trackType string) *AnimationTrack {
	newTrack := newAnimationTrack(trackType)
	channel.Tracks[trackType] = newTrack
	return newTrack
}

type Animation struct {
	Name     string
	Channels map[string]*AnimationChannel
	Length   float32 // Length of the animation in seconds
}

func NewAnimation(name string) *Animation {
	return &Animation{
		Name:     name,
		Channels: map[string]*AnimationChannel{},
	}
}

func (animation *Animation) AddChannel(name string) *AnimationChannel {
	newChannel := NewAnimationChannel(name)
	animation.Channels[name] = newChannel
	return newChannel
}

const (
	FinishModeLoop = iota
	FinishModePingPong
	FinishModeStop
)

// AnimationPlayer plays an Animation back on a node hierarchy. Channels are matched to the root node or its descendants by name.
// Animated nodes are marked for update as usual, so the next World.Update() picks the changes up.
type AnimationPlayer struct {
	Scene      *Scene
	RootNode   int
	Animation  *Animation
	Playhead   float32
	PlaySpeed  float32
	Playing    bool
	FinishMode int
	OnFinish   func()

	channelsToNodes map[*AnimationChannel]int
	logger          log.Logger
}

func NewAnimationPlayer(scene *Scene, rootNode int) *AnimationPlayer {
	scene.checkNode("NewAnimationPlayer()", rootNode)
	return &AnimationPlayer{
		Scene:      scene,
		RootNode:   rootNode,
		PlaySpeed:  1,
		FinishMode: FinishModeStop,
		logger:     log.New("animation"),
	}
}

// SetRoot changes the node the player animates.
func (ap *AnimationPlayer) SetRoot(node int) {
	ap.Scene.checkNode("AnimationPlayer.SetRoot()", node)
	ap.RootNode = node
	ap.channelsToNodes = nil
}

// Play starts playing the Animation given from the beginning, unless it's already playing.
func (ap *AnimationPlayer) Play(animation *Animation) {

	if ap.Animation != animation || !ap.Playing {
		ap.Animation = animation
		ap.Playhead = 0.0
		ap.Playing = true
		ap.channelsToNodes = nil
	}

}

func (ap *AnimationPlayer) assignChannels() {

	ap.channelsToNodes = map[*AnimationChannel]int{}

	if ap.Animation == nil {
		return
	}

	names := map[string]int{}
	stack := []int{ap.RootNode}

	for len(stack) > 0 {
		index := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node := ap.Scene.nodes[index]
		if _, exists := names[node.name]; !exists {
			names[node.name] = index
		}
		stack = append(stack, node.children...)
	}

	for _, channel := range ap.Animation.Channels {
		if index, exists := names[channel.Name]; exists {
			ap.channelsToNodes[channel] = index
		} else {
			ap.logger.Warningf("cannot find matching node for channel %q under root %q", channel.Name, ap.Scene.nodes[ap.RootNode].name)
		}
	}

}

// Update advances the Playhead by dt seconds (scaled by PlaySpeed) and applies the animation to the nodes it drives.
func (ap *AnimationPlayer) Update(dt float32) {

	if !ap.Playing || ap.Animation == nil {
		return
	}

	if ap.channelsToNodes == nil {
		ap.assignChannels()
	}

	for channel, index := range ap.channelsToNodes {

		node := ap.Scene.nodes[index]

		if track, exists := channel.Tracks[TrackTypePosition]; exists {
			if value, ok := track.ValueAsVector(ap.Playhead); ok {
				node.SetPosition(value)
			}
		}

		if track, exists := channel.Tracks[TrackTypeScale]; exists {
			if value, ok := track.ValueAsVector(ap.Playhead); ok {
				node.SetScale(value)
			}
		}

		if track, exists := channel.Tracks[TrackTypeRotation]; exists {
			if value, ok := track.ValueAsQuaternion(ap.Playhead); ok {
				node.SetRotation(value)
			}
		}

	}

	ap.Playhead += dt * ap.PlaySpeed

	length := ap.Animation.Length
	finished := ap.Playhead > length || ap.Playhead < 0

	if !finished {
		return
	}

	switch ap.FinishMode {

	case FinishModeLoop:

		if ap.Playhead > length {
			ap.Playhead -= length
		} else {
			ap.Playhead += length
		}

		if ap.OnFinish != nil {
			ap.OnFinish()
		}

	case FinishModePingPong:

		if ap.Playhead > length {
			ap.Playhead = length
		} else {
			ap.Playhead = 0
			if ap.OnFinish != nil {
				ap.OnFinish()
			}
		}

		ap.PlaySpeed *= -1

	case FinishModeStop:

		if ap.OnFinish != nil {
			ap.OnFinish()
		}
		ap.Playing = false

	}

}

// NodeTween moves a node from one position to another over a set duration, easing along the way.
type NodeTween struct {
	Scene    *Scene
	Node     int
	From, To Vector3
	tween    *gween.Tween
	done     bool
}

// NewNodeTween creates a NodeTween moving the node at the index given from its current local position to the target over
// duration seconds. Passing nil for easing interpolates linearly.
func NewNodeTween(scene *Scene, node int, to Vector3, duration float32, easing ease.TweenFunc) *NodeTween {

	if easing == nil {
		easing = ease.Linear
	}

	return &NodeTween{
		Scene: scene,
		Node:  node,
		From:  scene.Node(node).LocalPosition(),
		To:    to,
		tween: gween.New(0, 1, duration, easing),
	}

}

// Update advances the tween by dt seconds and moves the node to match. It returns true once the tween has finished.
func (nt *NodeTween) Update(dt float32) bool {

	if nt.done {
		return true
	}

	t, finished := nt.tween.Update(dt)
	nt.Scene.Node(nt.Node).SetPosition(nt.From.Lerp(nt.To, t))
	nt.done = finished

	return finished

}

// Reset restarts the tween from the node's current local position.
func (nt *NodeTween) Reset() {
	nt.From = nt.Scene.Node(nt.Node).LocalPosition()
	nt.tween.Reset()
	nt.done = false
}
