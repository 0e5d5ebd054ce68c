package capturekit

import (
	"github.com/koma-inc/capturekit/pkg/frame"
	"github.com/koma-inc/capturekit/pkg/pubsub"
)

// videoSink is a stateless relay: every frame the runtime delivers on its
// background goroutine is republished. There is no buffering beyond each
// subscriber's channel; frames are never queued for slow subscribers.
type videoSink struct {
	frames *pubsub.Broadcaster[*frame.Frame]
}

// relay clones the payload because subscribers consume frames after the
// device's release window has passed.
func (v *videoSink) relay(f *frame.Frame) {
	out := *f
	out.Data = append([]byte(nil), f.Data...)
	v.frames.Publish(&out)
}
