package systems

import (
	"github.com/decker502/navcam/pkg/components"
)

// startAnimator 启动动画器，进入延迟等待状态
//
// 启动不会同步推进动画：即使延迟与时长都为 0，OnStart/OnComplete 也在下一次 stepAnimator 中调用。
func startAnimator(a *components.ParameterAnimatorComponent) {
	a.State = components.AnimatorDelayed
	a.DelayRemaining = a.Delay
	a.Elapsed = 0
}

// stepAnimator 推进动画器一帧
//
// 参数:
//   - a: 动画器，未在运行时直接返回
//   - dt: 帧间隔（秒），延迟耗尽后的剩余时间计入插值
func stepAnimator(a *components.ParameterAnimatorComponent, dt float64) {
	if !a.IsRunning() {
		return
	}

	if a.State == components.AnimatorDelayed {
		a.DelayRemaining -= dt
		if a.DelayRemaining > 0 {
			return
		}
		dt = -a.DelayRemaining
		a.DelayRemaining = 0
		a.State = components.AnimatorRunning
		if a.OnStart != nil {
			a.OnStart()
		}
		// OnStart 中可能停止了自身
		if a.State != components.AnimatorRunning {
			return
		}
	}

	a.Elapsed += dt
	t := 1.0
	if a.Duration > 0 && a.Elapsed < a.Duration {
		t = a.Elapsed / a.Duration
	}

	if a.OnProgress != nil {
		a.OnProgress(a.Curve.Ease(t))
	}
	if a.State != components.AnimatorRunning {
		return
	}

	if t >= 1 {
		a.State = components.AnimatorFinished
		if a.OnComplete != nil {
			a.OnComplete()
		}
	}
}

// stopAnimator 强制停止动画器，镜头保持在当前位置，OnComplete 不会被调用
func stopAnimator(a *components.ParameterAnimatorComponent) {
	if a.IsRunning() {
		a.State = components.AnimatorStopped
	}
}

// completionBarrier 返回一个计数回调：被调用 total 次后调用一次 completion
func completionBarrier(total int, completion func()) func() {
	count := 0
	return func() {
		count++
		if count == total && completion != nil {
			completion()
		}
	}
}
