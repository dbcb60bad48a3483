// Package components 定义镜头动画使用的纯数据组件
package components

import (
	"github.com/decker502/navcam/pkg/types"
	"github.com/decker502/navcam/pkg/utils"
)

// AnimatorState 单轴动画器的生命周期状态
type AnimatorState int

const (
	// AnimatorInactive 已创建但未启动
	AnimatorInactive AnimatorState = iota
	// AnimatorDelayed 已启动，正在等待延迟结束
	AnimatorDelayed
	// AnimatorRunning 正在插值
	AnimatorRunning
	// AnimatorFinished 自然结束，完成回调已调用
	AnimatorFinished
	// AnimatorStopped 被强制停止，完成回调不会被调用
	AnimatorStopped
)

// ParameterAnimatorComponent 单个镜头轴的动画状态（纯数据）
//
// 每个轴（中心、缩放、方位、俯仰+锚点）各有一个动画器。
// 生命周期:
//  1. 过渡引擎在规划阶段创建组件，填入时长、延迟、曲线与回调
//  2. 启动后进入 Delayed，延迟耗尽时调用 OnStart 捕获起始值并进入 Running
//  3. 每帧以缓动后的进度调用 OnProgress 写入镜头
//  4. 进度到达 1 时进入 Finished 并调用一次 OnComplete
//  5. 被新的过渡或取消操作强制停止时进入 Stopped，OnComplete 不再调用
//
// 注意事项:
//   - 组件只包含数据，推进逻辑在 systems 包中
//   - 起始值在延迟结束时捕获，而不是创建时，以便被中断的过渡从实际位置继续
type ParameterAnimatorComponent struct {
	// Parameter 动画器负责的轴
	Parameter types.CameraParameter

	// Duration 插值时长（秒），0 表示在启动后的第一帧直接到达目标
	Duration float64

	// Delay 启动后的等待时间（秒）
	Delay float64

	// Curve 时间曲线
	Curve utils.CubicBezier

	// State 当前状态
	State AnimatorState

	// DelayRemaining 剩余延迟（秒）
	DelayRemaining float64

	// Elapsed 已插值的时间（秒）
	Elapsed float64

	// OnStart 延迟结束、开始插值时调用
	OnStart func()

	// OnProgress 每帧调用，参数为缓动后的进度 [0, 1]
	OnProgress func(progress float64)

	// OnComplete 自然结束时调用一次
	OnComplete func()
}

// IsRunning 动画器是否已启动且未结束（等待延迟也视为运行中）
func (c *ParameterAnimatorComponent) IsRunning() bool {
	return c != nil && (c.State == AnimatorDelayed || c.State == AnimatorRunning)
}
