package events

import (
	"github.com/google/uuid"

	"github.com/decker502/navcam/pkg/types"
)

// CameraStateChanged 导航镜头状态切换
type CameraStateChanged struct {
	From types.NavigationCameraState
	To   types.NavigationCameraState
}

// TransitionStarted 一次完整过渡开始
type TransitionStarted struct {
	ID     uuid.UUID
	State  types.NavigationCameraState
	Kind   types.TransitionKind
	Target types.CameraPose
}

// TransitionFinished 一次完整过渡的所有轴都已结束
type TransitionFinished struct {
	ID    uuid.UUID
	State types.NavigationCameraState
}

// TransitionCancelled 过渡被新的请求或 Stop 中断
type TransitionCancelled struct {
	ID    uuid.UUID
	State types.NavigationCameraState
}

// ViewportOptionsChanged 视口数据源产生了新的镜头请求
type ViewportOptionsChanged struct {
	Options types.NavigationCameraOptions
}

// CameraEvents 导航镜头相关的全部事件总线
type CameraEvents struct {
	StateChanged        *Bus[CameraStateChanged]
	TransitionStarted   *Bus[TransitionStarted]
	TransitionFinished  *Bus[TransitionFinished]
	TransitionCancelled *Bus[TransitionCancelled]
}

// NewCameraEvents 创建一组空的事件总线
func NewCameraEvents() *CameraEvents {
	return &CameraEvents{
		StateChanged:        NewBus[CameraStateChanged](),
		TransitionStarted:   NewBus[TransitionStarted](),
		TransitionFinished:  NewBus[TransitionFinished](),
		TransitionCancelled: NewBus[TransitionCancelled](),
	}
}
