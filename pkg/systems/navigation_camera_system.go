package systems

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/decker502/navcam/pkg/events"
	"github.com/decker502/navcam/pkg/types"
)

// NavigationCameraSystem 导航镜头状态机（idle / following / overview）
//
// 进入跟随或总览状态时，用视口数据源的当前请求执行一次完整过渡；
// 过渡期间忽略视口请求的变化，过渡结束后的变化以微调方式应用。
// 状态切换与过渡生命周期通过 Events() 中的事件总线发布，每次完整过渡有唯一 ID。
type NavigationCameraSystem struct {
	transition *CameraTransitionSystem
	dataSource *ViewportDataSource
	events     *events.CameraEvents
	logger     zerolog.Logger

	state         types.NavigationCameraState
	transitioning bool

	// transitionID/transitionState 正在进行的完整过渡
	transitionID    uuid.UUID
	transitionState types.NavigationCameraState

	// autoFollow 第一次拿到带缩放的跟随请求时从 idle 自动进入跟随
	autoFollow   bool
	autoFollowed bool

	unsubscribe func()
}

// NewNavigationCameraSystem 创建导航镜头状态机并订阅视口数据源
//
// 参数:
//   - transition: 镜头过渡引擎
//   - dataSource: 视口数据源
//   - logger: 日志
func NewNavigationCameraSystem(transition *CameraTransitionSystem, dataSource *ViewportDataSource, logger zerolog.Logger) *NavigationCameraSystem {
	n := &NavigationCameraSystem{
		transition: transition,
		dataSource: dataSource,
		events:     events.NewCameraEvents(),
		logger:     logger.With().Str("component", "navigation_camera").Logger(),
		state:      types.CameraStateIdle,
	}
	n.unsubscribe = dataSource.Changes().Subscribe(n.onViewportOptions)
	return n
}

// Events 镜头事件总线
func (n *NavigationCameraSystem) Events() *events.CameraEvents {
	return n.events
}

// State 当前状态
func (n *NavigationCameraSystem) State() types.NavigationCameraState {
	return n.state
}

// IsTransitioning 是否正在执行进入当前状态的完整过渡
func (n *NavigationCameraSystem) IsTransitioning() bool {
	return n.transitioning
}

// SetAutoFollow 开启后，idle 状态下第一次收到带缩放的跟随请求时自动进入跟随
func (n *NavigationCameraSystem) SetAutoFollow(enabled bool) {
	n.autoFollow = enabled
}

// SetState 切换状态；与当前状态相同时忽略
func (n *NavigationCameraSystem) SetState(state types.NavigationCameraState) {
	if state == n.state {
		return
	}

	from := n.state
	n.state = state
	n.logger.Info().Stringer("from", from).Stringer("to", state).Msg("camera state changed")
	n.events.StateChanged.Publish(events.CameraStateChanged{From: from, To: state})

	switch state {
	case types.CameraStateFollowing, types.CameraStateOverview:
		n.switchToViewportCamera()
	}
}

// Stop 进入 idle 并停止所有镜头动画
func (n *NavigationCameraSystem) Stop() {
	n.cancelTransition()
	n.SetState(types.CameraStateIdle)
	n.transition.CancelPendingTransition()
}

// Update 推进镜头动画一帧
func (n *NavigationCameraSystem) Update(dt float64) {
	n.transition.Update(dt)
}

// Close 取消对视口数据源的订阅
func (n *NavigationCameraSystem) Close() {
	if n.unsubscribe != nil {
		n.unsubscribe()
		n.unsubscribe = nil
	}
}

func (n *NavigationCameraSystem) switchToViewportCamera() {
	n.cancelTransition()

	state := n.state
	options := n.dataSource.Options().Following
	run := n.transition.TransitionToFollowing
	if state == types.CameraStateOverview {
		options = n.dataSource.Options().Overview
		run = n.transition.TransitionToOverview
	}

	id := uuid.New()
	n.transitionID = id
	n.transitionState = state
	n.transitioning = true

	started := false
	finishedEarly := false
	run(options, func() {
		if n.transitionID != id {
			return
		}
		n.transitioning = false
		if !started {
			finishedEarly = true
			return
		}
		n.events.TransitionFinished.Publish(events.TransitionFinished{ID: id, State: state})
	})

	kind := types.TransitionNone
	target := types.CameraPose{}
	if !finishedEarly {
		plan := n.transition.LastPlan()
		kind, target = plan.Kind, plan.Target
	}
	started = true

	n.logger.Debug().Str("id", id.String()).Stringer("state", state).Stringer("kind", kind).Msg("camera transition started")
	n.events.TransitionStarted.Publish(events.TransitionStarted{ID: id, State: state, Kind: kind, Target: target})
	if finishedEarly {
		n.events.TransitionFinished.Publish(events.TransitionFinished{ID: id, State: state})
	}
}

// cancelTransition 放弃正在进行的完整过渡并发布取消事件
func (n *NavigationCameraSystem) cancelTransition() {
	if !n.transitioning {
		return
	}
	id := n.transitionID
	n.transitioning = false
	n.transitionID = uuid.Nil
	n.events.TransitionCancelled.Publish(events.TransitionCancelled{ID: id, State: n.transitionState})
}

func (n *NavigationCameraSystem) onViewportOptions(ev events.ViewportOptionsChanged) {
	if n.autoFollow && !n.autoFollowed && ev.Options.Following.Zoom != nil {
		n.autoFollowed = true
		if n.state == types.CameraStateIdle {
			n.SetState(types.CameraStateFollowing)
			return
		}
	}

	if n.transitioning {
		return
	}

	switch n.state {
	case types.CameraStateFollowing:
		n.transition.UpdateForFollowing(ev.Options.Following, nil)
	case types.CameraStateOverview:
		n.transition.UpdateForOverview(ev.Options.Overview, nil)
	}
}
