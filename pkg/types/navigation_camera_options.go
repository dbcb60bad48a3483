package types

// NavigationCameraOptions 视口数据源为两种导航状态分别给出的镜头请求
type NavigationCameraOptions struct {
	Following CameraOptions
	Overview  CameraOptions
}

// Equal 两组请求是否完全相同
func (o NavigationCameraOptions) Equal(other NavigationCameraOptions) bool {
	return o.Following.Equal(other.Following) && o.Overview.Equal(other.Overview)
}
