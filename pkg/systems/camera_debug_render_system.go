package systems

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/navcam/pkg/types"
)

// DebugOverlay 镜头调试层需要绘制的几何信息（屏幕点）
type DebugOverlay struct {
	// SafeArea 扣除内边距后的视口
	SafeArea types.Rect

	// DetourBounds 跟随请求的中心落在其外时采用绕行过渡（按跟随请求的内边距计算）
	DetourBounds types.Rect

	Anchor types.ScreenPoint
	Center types.ScreenPoint

	// FollowingCenter/OverviewCenter 视口数据源请求的中心，请求为空时为 nil
	FollowingCenter *types.ScreenPoint
	OverviewCenter  *types.ScreenPoint

	Lines []string
}

// DebugOverlayGeometry 根据当前镜头与视口请求计算调试层
//
// 参数:
//   - surface: 渲染表面
//   - options: 视口数据源的当前请求
//   - halo: 绕行判定的 halo
func DebugOverlayGeometry(surface MapSurface, options types.NavigationCameraOptions, halo float64) DebugOverlay {
	pose := surface.CameraState()
	detourPadding := pose.Padding
	if options.Following.Padding != nil {
		detourPadding = *options.Following.Padding
	}
	overlay := DebugOverlay{
		SafeArea:     surface.Bounds().Inset(pose.Padding),
		DetourBounds: DetourBounds(surface.Bounds(), detourPadding, halo),
		Anchor:       pose.Anchor,
		Center:       surface.Project(pose.Center),
		Lines: []string{
			fmt.Sprintf("Pitch: %.2f°", pose.Pitch),
			fmt.Sprintf("Zoom: %.2f", pose.Zoom),
			fmt.Sprintf("Bearing: %.2f°", pose.Bearing),
			fmt.Sprintf("Center: %.6f, %.6f", pose.Center.Latitude, pose.Center.Longitude),
		},
	}

	if c := options.Following.Center; c != nil && c.IsValid() {
		p := surface.Project(*c)
		overlay.FollowingCenter = &p
	}
	if c := options.Overview.Center; c != nil && c.IsValid() {
		p := surface.Project(*c)
		overlay.OverviewCenter = &p
	}
	return overlay
}

var (
	debugSafeAreaColor  = color.RGBA{0, 200, 0, 255}
	debugHaloColor      = color.RGBA{255, 160, 0, 200}
	debugAnchorColor    = color.RGBA{220, 0, 0, 255}
	debugCenterColor    = color.RGBA{0, 0, 220, 255}
	debugFollowingColor = color.RGBA{0, 180, 180, 255}
	debugOverviewColor  = color.RGBA{180, 0, 180, 255}
)

// CameraDebugRenderSystem 镜头调试层渲染系统
type CameraDebugRenderSystem struct {
	surface    MapSurface
	dataSource *ViewportDataSource
	transition *CameraTransitionSystem
}

// NewCameraDebugRenderSystem 创建镜头调试层渲染系统
func NewCameraDebugRenderSystem(surface MapSurface, dataSource *ViewportDataSource, transition *CameraTransitionSystem) *CameraDebugRenderSystem {
	return &CameraDebugRenderSystem{
		surface:    surface,
		dataSource: dataSource,
		transition: transition,
	}
}

// Draw 绘制安全区域、绕行边界、锚点、镜头中心与视口请求中心
func (s *CameraDebugRenderSystem) Draw(screen *ebiten.Image) {
	overlay := DebugOverlayGeometry(s.surface, s.dataSource.Options(), s.transition.Config().OffscreenHalo)

	strokeRect(screen, overlay.SafeArea, 3, debugSafeAreaColor)
	strokeRect(screen, overlay.DetourBounds, 1, debugHaloColor)

	drawMarker(screen, overlay.Anchor, debugAnchorColor, "Anchor")
	drawMarker(screen, overlay.Center, debugCenterColor, "Center")
	if overlay.FollowingCenter != nil {
		drawMarker(screen, *overlay.FollowingCenter, debugFollowingColor, "Following")
	}
	if overlay.OverviewCenter != nil {
		drawMarker(screen, *overlay.OverviewCenter, debugOverviewColor, "Overview")
	}

	lines := overlay.Lines
	plan := s.transition.LastPlan()
	if s.transition.IsTransitioning() {
		lines = append(lines, fmt.Sprintf("Transition: %s (%.2fs)", plan.Kind, plan.Duration()))
	}
	lines = append(lines, fmt.Sprintf("Active: %s  InTransition: %s",
		s.transition.ActiveParameters(), s.transition.ParametersInTransition()))

	x := int(overlay.SafeArea.X) + 8
	y := int(overlay.SafeArea.Y) + 8
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, x, y+i*16)
	}
}

func strokeRect(screen *ebiten.Image, r types.Rect, width float32, clr color.Color) {
	if r.Width <= 0 || r.Height <= 0 {
		return
	}
	vector.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), width, clr, false)
}

func drawMarker(screen *ebiten.Image, p types.ScreenPoint, clr color.Color, label string) {
	vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), 3, clr, true)
	ebitenutil.DebugPrintAt(screen, label, int(p.X)+6, int(p.Y)-8)
}
