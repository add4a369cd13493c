package rep

import (
	"sync"
	"time"

	"github.com/arvindkm/repcount/internal/exercise"
)

// Phase is the coarse movement state of a tracked exercise.
type Phase string

const (
	// PhaseUp is the extended, initial position of the movement.
	PhaseUp Phase = "up"
	// PhaseDown is the flexed position of the movement.
	PhaseDown Phase = "down"
)

// Feedback classifies where the user is in the movement, for display by
// the UI layer. It never affects counting.
type Feedback string

const (
	FeedbackReady       Feedback = "ready"
	FeedbackGoingDown   Feedback = "going_down"
	FeedbackHoldingDown Feedback = "holding_down"
	FeedbackGoingUp     Feedback = "going_up"
	FeedbackRepComplete Feedback = "rep_complete"
	FeedbackNoDetection Feedback = "no_detection"
)

// Counter timing and band constants.
const (
	// DebounceInterval is the minimum wall-clock time between two
	// accepted repetition completions. A single noisy oscillation across
	// the upper threshold must not count twice.
	DebounceInterval = 400 * time.Millisecond

	// FeedbackResetDelay is how long RepComplete stays visible before
	// reverting to Ready, unless superseded by a newer feedback update.
	FeedbackResetDelay = 300 * time.Millisecond

	// MaxFramesWithoutDetection is the number of consecutive frames with
	// no usable joints before tracking is reported lost.
	MaxFramesWithoutDetection = 15

	// Near-threshold feedback band widths in degrees. Inverted
	// (curl-like) exercises use the wider band.
	standardBand = 15.0
	invertedBand = 20.0
)

// Snapshot is one consistent view of the counter, published after every
// processed frame. UI layers on other goroutines only ever see whole
// snapshots, never partial updates.
type Snapshot struct {
	Count    int      `json:"count"`
	Phase    Phase    `json:"phase"`
	Feedback Feedback `json:"feedback"`
	Angle    float64  `json:"angle"`
}

// Result reports what one processed frame did.
type Result struct {
	Snapshot Snapshot

	// RepCompleted is true when this frame completed a repetition.
	// At most one repetition completes per frame.
	RepCompleted bool

	// TrackingLost is true on the single frame where the consecutive
	// no-detection run reaches MaxFramesWithoutDetection.
	TrackingLost bool
}

// Counter is the phase state machine that turns an angle stream into
// repetition counts. All methods are safe for concurrent use. One
// Counter tracks one exercise configuration for the life of a session;
// switching exercise means constructing a new Counter.
type Counter struct {
	mu sync.Mutex

	config   exercise.Config
	smoother *Smoother

	phase    Phase
	count    int
	feedback Feedback
	angle    float64
	active   bool

	lastRepAt   time.Time
	misses      int // consecutive no-detection frames
	lostFired   bool
	feedbackSeq uint64 // invalidates a pending feedback reset

	// OnRep, if set, is invoked outside the lock after each counted
	// repetition, including manual AddRep calls.
	OnRep func(count int)

	// now is the debounce clock, replaceable in tests.
	now func() time.Time
	// resetDelay overrides FeedbackResetDelay in tests.
	resetDelay time.Duration
}

// NewCounter builds a counter for one exercise configuration. An invalid
// configuration (equal thresholds) makes every phase transition
// permanently ambiguous, so it is a hard construction-time failure.
func NewCounter(cfg exercise.Config) (*Counter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Counter{
		config:     cfg,
		smoother:   NewSmoother(SmoothingWindow),
		phase:      PhaseUp,
		feedback:   FeedbackReady,
		active:     true,
		now:        time.Now,
		resetDelay: FeedbackResetDelay,
	}, nil
}

// Config returns the exercise configuration this counter tracks.
func (c *Counter) Config() exercise.Config {
	return c.config
}

// ProcessFrame runs one extracted pose frame through the full pipeline:
// angle computation, smoothing, then the phase machine. Frames where no
// angle can be computed count toward the tracking-lost run.
func (c *Counter) ProcessFrame(f PoseFrame) Result {
	angle, ok := Angle(&f, c.config.Proximal, c.config.Vertex, c.config.Distal)
	if !ok {
		return c.ProcessMiss()
	}

	c.mu.Lock()
	if !c.active {
		res := Result{Snapshot: c.snapshotLocked()}
		c.mu.Unlock()
		return res
	}

	smoothed := c.smoother.Add(angle)
	res, onRep := c.processAngleLocked(smoothed)
	c.mu.Unlock()

	if onRep != nil {
		onRep(res.Snapshot.Count)
	}
	return res
}

// ProcessAngle runs one smoothed angle value through the phase machine.
// When the session is paused this is a no-op.
func (c *Counter) ProcessAngle(angle float64) Result {
	c.mu.Lock()
	if !c.active {
		res := Result{Snapshot: c.snapshotLocked()}
		c.mu.Unlock()
		return res
	}

	res, onRep := c.processAngleLocked(angle)
	c.mu.Unlock()

	if onRep != nil {
		onRep(res.Snapshot.Count)
	}
	return res
}

// ProcessMiss records one frame with no usable detection. When the
// consecutive run reaches MaxFramesWithoutDetection the result carries
// TrackingLost exactly once; phase and count are never touched.
func (c *Counter) ProcessMiss() Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.active {
		return Result{Snapshot: c.snapshotLocked()}
	}

	c.misses++

	res := Result{}
	if c.misses >= MaxFramesWithoutDetection && !c.lostFired {
		c.lostFired = true
		c.setFeedbackLocked(FeedbackNoDetection)
		res.TrackingLost = true
	}

	res.Snapshot = c.snapshotLocked()
	return res
}

// processAngleLocked applies the transition rules for one angle tick.
// Both threshold comparisons are inclusive so a reading landing exactly
// on a threshold still transitions. Returns the rep callback to invoke
// after the lock is released, if a repetition completed.
func (c *Counter) processAngleLocked(angle float64) (Result, func(int)) {
	c.angle = angle

	// A valid angle clears any tracking-lost condition.
	c.misses = 0
	if c.lostFired {
		c.lostFired = false
		if c.feedback == FeedbackNoDetection {
			c.setFeedbackLocked(FeedbackReady)
		}
	}

	band := standardBand
	if c.config.Inverted {
		band = invertedBand
	}

	res := Result{}
	var onRep func(int)

	switch c.phase {
	case PhaseUp:
		if angle <= c.config.DownThreshold {
			c.phase = PhaseDown
			c.setFeedbackLocked(FeedbackHoldingDown)
		} else if angle < c.config.UpThreshold-band {
			c.setFeedbackLocked(FeedbackGoingDown)
		}

	case PhaseDown:
		if angle >= c.config.UpThreshold {
			// Debounce: reject completions too soon after the last one.
			// Rejected attempts alter neither phase nor count.
			if c.now().Sub(c.lastRepAt) >= DebounceInterval {
				c.phase = PhaseUp
				c.count++
				c.lastRepAt = c.now()
				c.setFeedbackLocked(FeedbackRepComplete)
				c.scheduleFeedbackResetLocked()
				res.RepCompleted = true
				onRep = c.OnRep
			}
		} else if angle > c.config.DownThreshold+band {
			c.setFeedbackLocked(FeedbackGoingUp)
		}
	}

	res.Snapshot = c.snapshotLocked()
	return res, onRep
}

// setFeedbackLocked updates the feedback classification and bumps the
// sequence so any pending delayed reset is superseded.
func (c *Counter) setFeedbackLocked(fb Feedback) {
	c.feedback = fb
	c.feedbackSeq++
}

// scheduleFeedbackResetLocked reverts RepComplete to Ready after the
// reset delay, unless a newer feedback update lands in the interim.
func (c *Counter) scheduleFeedbackResetLocked() {
	seq := c.feedbackSeq
	time.AfterFunc(c.resetDelay, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.feedbackSeq == seq && c.feedback == FeedbackRepComplete {
			c.setFeedbackLocked(FeedbackReady)
		}
	})
}

// snapshotLocked builds the published state snapshot.
func (c *Counter) snapshotLocked() Snapshot {
	return Snapshot{
		Count:    c.count,
		Phase:    c.phase,
		Feedback: c.feedback,
		Angle:    c.angle,
	}
}

// Snapshot returns the current state as one consistent view.
func (c *Counter) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// SetActive pauses or resumes the session. While paused, frame
// processing is a no-op.
func (c *Counter) SetActive(active bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = active
}

// Active reports whether the session is currently processing frames.
func (c *Counter) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// AddRep manually increments the count without a phase transition, for
// correcting a missed repetition. Fires OnRep like a tracked completion.
func (c *Counter) AddRep() Snapshot {
	c.mu.Lock()
	c.count++
	onRep := c.OnRep
	snap := c.snapshotLocked()
	c.mu.Unlock()

	if onRep != nil {
		onRep(snap.Count)
	}
	return snap
}

// Reset returns the counter to a fresh session: zero count, phase Up,
// empty smoothing window, Ready feedback. The exercise configuration is
// kept.
func (c *Counter) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.count = 0
	c.phase = PhaseUp
	c.angle = 0
	c.smoother.Reset()
	c.misses = 0
	c.lostFired = false
	c.lastRepAt = time.Time{}
	c.setFeedbackLocked(FeedbackReady)
}
