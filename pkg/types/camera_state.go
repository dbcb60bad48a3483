// Package types 定义导航镜头共享的基础类型
// 这个包只依赖 geo，供 systems、surface 与命令行工具共同引用
package types

// NavigationCameraState 导航镜头所处状态
type NavigationCameraState int

const (
	// CameraStateIdle 空闲：镜头不受导航逻辑控制
	CameraStateIdle NavigationCameraState = iota
	// CameraStateFollowing 跟随：倾斜的 3D 视角追踪车辆
	CameraStateFollowing
	// CameraStateOverview 总览：俯视剩余路线
	CameraStateOverview
)

// String 返回状态名称
func (s NavigationCameraState) String() string {
	switch s {
	case CameraStateIdle:
		return "idle"
	case CameraStateFollowing:
		return "following"
	case CameraStateOverview:
		return "overview"
	default:
		return "unknown"
	}
}

// TransitionKind 一次完整过渡所选择的策略
type TransitionKind int

const (
	// TransitionNone 未发生过渡（请求无效或已中止）
	TransitionNone TransitionKind = iota
	// TransitionLowToHighZoom 单阶段放大
	TransitionLowToHighZoom
	// TransitionHighToLowZoom 单阶段缩小
	TransitionHighToLowZoom
	// TransitionViaMidpoint 目标在屏幕外：先压平缩小到中间视角，再放大到目标
	TransitionViaMidpoint
)

// String 返回策略名称
func (k TransitionKind) String() string {
	switch k {
	case TransitionLowToHighZoom:
		return "low-to-high-zoom"
	case TransitionHighToLowZoom:
		return "high-to-low-zoom"
	case TransitionViaMidpoint:
		return "via-midpoint"
	default:
		return "none"
	}
}
