// Package systems 实现导航镜头的逐帧逻辑
//
// 包括单轴动画器推进、完整过渡与轻量更新的规划、过渡引擎、
// 视口数据源、idle/following/overview 状态机以及调试绘制。
// 所有系统都在调用方的帧循环线程上运行，不做内部同步。
package systems

import (
	"github.com/rs/zerolog"

	"github.com/decker502/navcam/pkg/components"
	"github.com/decker502/navcam/pkg/config"
	"github.com/decker502/navcam/pkg/geo"
	"github.com/decker502/navcam/pkg/types"
	"github.com/decker502/navcam/pkg/utils"
)

// CameraTransitionSystem 镜头过渡引擎
//
// 为中心（连同内边距）、缩放、方位、俯仰（连同锚点）四个轴各自调度带延迟与缓动曲线的动画器，
// 并在所有轴结束后调用一次完成回调。
//
// 两类动画器:
//   - 完整过渡（TransitionToFollowing/TransitionToOverview）：按距离、缩放差、角度差计算时长，
//     缩放轴为节奏轴，其余轴与其同时收尾；目标在屏幕外时先经过中间视角
//   - 逐帧微调（UpdateForFollowing/UpdateForOverview）：固定时长，只重新定向活动集合中的轴
//
// 轴集合:
//   - cameraParameters: 已建立微调动画器、可以接受微调的轴
//   - inTransition: 正在被完整过渡占用的轴，微调不会触碰
//
// 一个轴不会同时出现在两个集合中。
//
// 所有方法与 Update 必须在同一个 goroutine（帧循环）中调用。
type CameraTransitionSystem struct {
	surface MapSurface
	config  *config.CameraTransitionConfig
	logger  zerolog.Logger

	detached bool

	// transitionAnimators 当前完整过渡阶段的动画器
	transitionAnimators []*components.ParameterAnimatorComponent

	// updateAnimators 每个轴的微调动画器
	updateAnimators map[types.CameraParameter]*components.ParameterAnimatorComponent

	cameraParameters types.CameraParameters
	inTransition     types.CameraParameters

	lastPlan TransitionPlan
}

// NewCameraTransitionSystem 创建镜头过渡引擎
//
// 参数:
//   - surface: 渲染表面
//   - cfg: 过渡常量，nil 时使用默认值（内部保存副本）
//   - logger: 日志，调试级别记录策略选择与中止原因
func NewCameraTransitionSystem(surface MapSurface, cfg *config.CameraTransitionConfig, logger zerolog.Logger) *CameraTransitionSystem {
	if cfg == nil {
		cfg = config.DefaultCameraTransitionConfig()
	}
	return &CameraTransitionSystem{
		surface:         surface,
		config:          cfg.Clone(),
		logger:          logger.With().Str("component", "camera_transition").Logger(),
		updateAnimators: make(map[types.CameraParameter]*components.ParameterAnimatorComponent),
	}
}

// Config 返回当前过渡常量的副本
func (s *CameraTransitionSystem) Config() *config.CameraTransitionConfig {
	return s.config.Clone()
}

// SetConfig 替换过渡常量，对之后开始的过渡与微调生效
func (s *CameraTransitionSystem) SetConfig(cfg *config.CameraTransitionConfig) {
	if cfg == nil {
		cfg = config.DefaultCameraTransitionConfig()
	}
	s.config = cfg.Clone()
}

// TransitionToFollowing 过渡到跟随视角
//
// target 必须包含全部六个字段且中心坐标合法，否则立即调用 completion，镜头不变。
// 开始前停止所有正在运行的动画器，被中断过渡的 completion 不再调用。
func (s *CameraTransitionSystem) TransitionToFollowing(target types.CameraOptions, completion func()) {
	s.transition(target, types.CameraStateFollowing, completion)
}

// TransitionToOverview 过渡到总览视角，俯仰强制为 0，不经过中间视角
func (s *CameraTransitionSystem) TransitionToOverview(target types.CameraOptions, completion func()) {
	s.transition(target, types.CameraStateOverview, completion)
}

func (s *CameraTransitionSystem) transition(target types.CameraOptions, mode types.NavigationCameraState, completion func()) {
	if s.detached {
		s.logger.Debug().Str("mode", mode.String()).Msg("surface detached, transition skipped")
		callCompletion(completion)
		return
	}

	pose, ok := target.Pose()
	if !ok {
		s.logger.Debug().Str("mode", mode.String()).Msg("incomplete camera options, transition skipped")
		callCompletion(completion)
		return
	}

	s.stopAnimators()

	plan := PlanTransition(s.surface, pose, mode, s.config)
	s.lastPlan = plan
	s.inTransition = types.NewCameraParameters(types.AllCameraParameters...)
	s.cameraParameters = 0

	s.logger.Debug().
		Str("mode", mode.String()).
		Str("kind", plan.Kind.String()).
		Stringer("from", plan.From).
		Stringer("to", plan.Target).
		Float64("duration", plan.Duration()).
		Msg("transition started")

	s.runStage(0, completion)
}

// runStage 启动 lastPlan 的第 index 个阶段
func (s *CameraTransitionSystem) runStage(index int, completion func()) {
	stage := s.lastPlan.Stages[index]

	done := completionBarrier(len(stage.Axes), func() {
		if index+1 < len(s.lastPlan.Stages) {
			// 以中间视角的实际镜头重新规划下一阶段
			next := s.lastPlan.Stages[index+1]
			s.lastPlan.Stages[index+1] = planStage(next.Kind, s.surface.CameraState(), next.Target, s.timingFor(next.Kind))
			s.logger.Debug().Int("stage", index+1).Msg("midpoint reached")
			s.runStage(index+1, completion)
			return
		}

		s.transitionAnimators = nil
		s.inTransition = 0
		s.setUpAnimatorsForFollowing(types.NewCameraParameters(types.AllCameraParameters...))
		s.logger.Debug().Str("kind", s.lastPlan.Kind.String()).Msg("transition finished")
		callCompletion(completion)
	})

	s.transitionAnimators = make([]*components.ParameterAnimatorComponent, 0, len(stage.Axes))
	for _, axis := range stage.Axes {
		a := s.newAxisAnimator(axis.Parameter, stage.Target, axis.Duration, axis.Delay, axis.Curve)
		a.OnComplete = done
		s.transitionAnimators = append(s.transitionAnimators, a)
		startAnimator(a)
	}
}

func (s *CameraTransitionSystem) timingFor(kind types.TransitionKind) config.TransitionTiming {
	switch kind {
	case types.TransitionViaMidpoint:
		return s.config.Midpoint
	case types.TransitionHighToLowZoom:
		return s.config.ZoomOut
	default:
		return s.config.ZoomIn
	}
}

// UpdateForFollowing 微调跟随视角
//
// 只重新定向活动集合中的轴；正在完整过渡中的轴被跳过。
// 不在任何集合中的轴（例如完整过渡被取消后）会先建立微调动画器再参与。
// 所有被重新定向的轴结束后调用 completion；没有轴需要更新时立即调用。
func (s *CameraTransitionSystem) UpdateForFollowing(target types.CameraOptions, completion func()) {
	s.update(target, types.CameraStateFollowing, completion)
}

// UpdateForOverview 微调总览视角，方位角强制为 0
func (s *CameraTransitionSystem) UpdateForOverview(target types.CameraOptions, completion func()) {
	target.Bearing = types.Ptr(0.0)
	s.update(target, types.CameraStateOverview, completion)
}

func (s *CameraTransitionSystem) update(target types.CameraOptions, mode types.NavigationCameraState, completion func()) {
	if s.detached {
		callCompletion(completion)
		return
	}
	target = target.Sanitized()

	current := s.surface.CameraState()
	planned := PlanUpdate(current, target, mode, s.config.Update)

	axes := make([]UpdateAxis, 0, len(planned))
	for _, axis := range planned {
		if s.inTransition.Contains(axis.Parameter) {
			continue
		}
		if !s.cameraParameters.Contains(axis.Parameter) {
			s.logger.Debug().Stringer("parameter", axis.Parameter).Msg("axis not set up, enrolling")
			s.setUpAnimatorsForFollowing(types.NewCameraParameters(axis.Parameter))
		}
		axes = append(axes, axis)
	}

	if len(axes) == 0 {
		callCompletion(completion)
		return
	}

	pose := target.Apply(current)
	done := completionBarrier(len(axes), completion)
	for _, axis := range axes {
		if prev := s.updateAnimators[axis.Parameter]; prev != nil {
			stopAnimator(prev)
		}
		a := s.newAxisAnimator(axis.Parameter, pose, s.config.Update.Duration, 0, axis.Curve)
		a.OnComplete = done
		s.updateAnimators[axis.Parameter] = a
		startAnimator(a)
	}
}

// setUpAnimatorsForFollowing 为 params 中的轴建立（未启动的）微调动画器并加入活动集合
func (s *CameraTransitionSystem) setUpAnimatorsForFollowing(params types.CameraParameters) {
	for _, p := range types.AllCameraParameters {
		if !params.Contains(p) {
			continue
		}
		if prev := s.updateAnimators[p]; prev != nil {
			stopAnimator(prev)
		}
		s.updateAnimators[p] = &components.ParameterAnimatorComponent{
			Parameter: p,
			Duration:  s.config.Update.Duration,
			Curve:     s.config.Update.SnappyCurve,
		}
		s.cameraParameters = s.cameraParameters.Insert(p)
	}
}

// newAxisAnimator 创建单轴动画器；起始值在延迟结束时从渲染表面读取
func (s *CameraTransitionSystem) newAxisAnimator(p types.CameraParameter, target types.CameraPose, duration, delay float64, curve utils.CubicBezier) *components.ParameterAnimatorComponent {
	a := &components.ParameterAnimatorComponent{
		Parameter: p,
		Duration:  duration,
		Delay:     delay,
		Curve:     curve,
	}

	var from types.CameraPose
	a.OnStart = func() {
		from = s.surface.CameraState()
	}

	switch p {
	case types.ParameterCenter:
		a.OnProgress = func(t float64) {
			s.surface.SetCamera(types.CameraOptions{
				Center:  types.Ptr(geo.InterpolateCoordinate(from.Center, target.Center, t)),
				Padding: types.Ptr(from.Padding.Lerp(target.Padding, t)),
			})
		}
	case types.ParameterZoom:
		a.OnProgress = func(t float64) {
			s.surface.SetCamera(types.CameraOptions{
				Zoom: types.Ptr(from.Zoom + (target.Zoom-from.Zoom)*t),
			})
		}
	case types.ParameterBearing:
		a.OnProgress = func(t float64) {
			s.surface.SetCamera(types.CameraOptions{
				Bearing: types.Ptr(lerpBearing(from.Bearing, target.Bearing, t)),
			})
		}
	case types.ParameterPitch:
		a.OnProgress = func(t float64) {
			s.surface.SetCamera(types.CameraOptions{
				Pitch:  types.Ptr(from.Pitch + (target.Pitch-from.Pitch)*t),
				Anchor: types.Ptr(from.Anchor.Lerp(target.Anchor, t)),
			})
		}
	}
	return a
}

// CancelPendingTransition 停止所有动画器，镜头停在当前位置；没有动画时不做任何事
func (s *CameraTransitionSystem) CancelPendingTransition() {
	if !s.IsAnimating() && s.inTransition.IsEmpty() {
		return
	}
	s.logger.Debug().Stringer("inTransition", s.inTransition).Msg("transition cancelled")
	s.stopAnimators()
}

// stopAnimators 强制停止所有完整过渡与微调动画器
//
// 被完整过渡占用的轴回到空闲（不在任何集合中），下一次微调时再建立。
func (s *CameraTransitionSystem) stopAnimators() {
	for _, a := range s.transitionAnimators {
		stopAnimator(a)
	}
	s.transitionAnimators = nil
	for _, a := range s.updateAnimators {
		stopAnimator(a)
	}
	s.inTransition = 0
}

// Update 推进所有运行中的动画器一帧
//
// 本帧回调中新启动的动画器从下一帧开始推进。
func (s *CameraTransitionSystem) Update(dt float64) {
	if s.detached {
		return
	}
	for _, a := range s.runningAnimators() {
		stepAnimator(a, dt)
	}
}

func (s *CameraTransitionSystem) runningAnimators() []*components.ParameterAnimatorComponent {
	running := make([]*components.ParameterAnimatorComponent, 0, 8)
	for _, a := range s.transitionAnimators {
		if a.IsRunning() {
			running = append(running, a)
		}
	}
	for _, p := range types.AllCameraParameters {
		if a := s.updateAnimators[p]; a.IsRunning() {
			running = append(running, a)
		}
	}
	return running
}

// IsAnimating 是否有动画器正在运行（包括等待延迟）
func (s *CameraTransitionSystem) IsAnimating() bool {
	return len(s.runningAnimators()) > 0
}

// IsTransitioning 是否有完整过渡正在进行
func (s *CameraTransitionSystem) IsTransitioning() bool {
	return !s.inTransition.IsEmpty()
}

// ActiveParameters 已建立微调动画器的轴
func (s *CameraTransitionSystem) ActiveParameters() types.CameraParameters {
	return s.cameraParameters
}

// ParametersInTransition 正在被完整过渡占用的轴
func (s *CameraTransitionSystem) ParametersInTransition() types.CameraParameters {
	return s.inTransition
}

// LastPlan 最近一次完整过渡的规划
func (s *CameraTransitionSystem) LastPlan() TransitionPlan {
	return s.lastPlan
}

// Detach 释放渲染表面：停止所有动画，之后的请求立即完成且不修改镜头
func (s *CameraTransitionSystem) Detach() {
	s.stopAnimators()
	s.cameraParameters = 0
	s.detached = true
	s.logger.Debug().Msg("surface detached")
}

// IsDetached 渲染表面是否已释放
func (s *CameraTransitionSystem) IsDetached() bool {
	return s.detached
}

// lerpBearing 沿最短弧插值，结束时精确落在目标上
func lerpBearing(from, to, t float64) float64 {
	if t >= 1 {
		return utils.WrapDegrees(to)
	}
	return utils.LerpBearing(from, to, t)
}

func callCompletion(completion func()) {
	if completion != nil {
		completion()
	}
}
