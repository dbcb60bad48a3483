// cmd/camera_showcase/main.go
// 导航镜头演示程序：车辆沿路线行驶，镜头在跟随/总览之间过渡
//
// 用法：
//   go run ./cmd/camera_showcase --config=cmd/camera_showcase/config.yaml
//
// 按键：
//   F 跟随  O 总览  Esc 停止  D 调试层  P 暂停车辆  J 跳过半条路线
//   [ / ] 调整 halo  S 保存调优  R 恢复默认调优
//   点击/触摸 停止导航镜头并平移地图

package main

import (
	"flag"
	"fmt"
	"image/color"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/quasilyte/gdata/v2"
	"github.com/rs/zerolog"

	"github.com/decker502/navcam/pkg/events"
	"github.com/decker502/navcam/pkg/geo"
	"github.com/decker502/navcam/pkg/storage"
	"github.com/decker502/navcam/pkg/surface"
	"github.com/decker502/navcam/pkg/systems"
	"github.com/decker502/navcam/pkg/types"
)

var (
	configPath = flag.String("config", "cmd/camera_showcase/config.yaml", "配置文件路径")
	verbose    = flag.Bool("verbose", false, "详细日志")
)

// viewportUpdateInterval 向视口数据源推送车辆位置的间隔（秒）
const viewportUpdateInterval = 0.5

var (
	backgroundColor = color.RGBA{235, 235, 228, 255}
	routeColor      = color.RGBA{40, 110, 240, 255}
	vehicleColor    = color.RGBA{230, 60, 40, 255}
)

// Game 演示程序主结构
type Game struct {
	config *ShowcaseConfig
	logger zerolog.Logger

	surface    *surface.MercatorSurface
	transition *systems.CameraTransitionSystem
	dataSource *systems.ViewportDataSource
	camera     *systems.NavigationCameraSystem
	debug      *systems.CameraDebugRenderSystem
	tuning     *storage.TuningManager

	route   []geo.Coordinate
	vehicle *Vehicle

	// width/height 当前视口尺寸（像素）
	width  int
	height int

	showDebug      bool
	paused         bool
	sinceViewport  float64
	lastTransition string
}

// NewGame 创建演示程序实例
func NewGame(cfg *ShowcaseConfig, gdataManager *gdata.Manager, logger zerolog.Logger) (*Game, error) {
	route, err := cfg.DecodeRoute()
	if err != nil {
		return nil, err
	}

	tuning := storage.NewTuningManager(gdataManager, logger)
	transitionConfig := tuning.Config()
	if fileConfig, err := cfg.LoadTransitionConfig(); err != nil {
		return nil, fmt.Errorf("加载过渡常量失败: %w", err)
	} else if fileConfig != nil {
		transitionConfig = fileConfig
	}

	s := surface.NewMercatorSurface(float64(cfg.Window.Width), float64(cfg.Window.Height), cfg.StartPose)
	s.SetLimits(surface.Limits{
		MinZoom:  transitionConfig.MinZoom,
		MaxZoom:  transitionConfig.MaxZoom,
		MaxPitch: transitionConfig.MaxPitch,
	})

	transition := systems.NewCameraTransitionSystem(s, transitionConfig, logger)
	dataSource := systems.NewViewportDataSource(s, transitionConfig.Viewport)
	camera := systems.NewNavigationCameraSystem(transition, dataSource, logger)
	camera.SetAutoFollow(true)

	g := &Game{
		config:     cfg,
		logger:     logger,
		surface:    s,
		transition: transition,
		dataSource: dataSource,
		camera:     camera,
		debug:      systems.NewCameraDebugRenderSystem(s, dataSource, transition),
		tuning:     tuning,
		route:      route,
		vehicle:    NewVehicle(route, cfg.Route.Speed),
		width:      cfg.Window.Width,
		height:     cfg.Window.Height,
		showDebug:  true,
	}

	camera.Events().TransitionStarted.Subscribe(func(ev events.TransitionStarted) {
		g.lastTransition = fmt.Sprintf("%s -> %s", ev.Kind, ev.State)
	})
	camera.Events().TransitionFinished.Subscribe(func(ev events.TransitionFinished) {
		logger.Info().Str("id", ev.ID.String()).Stringer("state", ev.State).Msg("transition finished")
	})

	logger.Info().
		Int("points", len(route)).
		Float64("length_m", g.vehicle.RouteLength()).
		Msg("route loaded")

	g.pushViewport()
	return g, nil
}

func (g *Game) pushViewport() {
	g.dataSource.Update(systems.ViewportState{
		Location:        g.vehicle.Location(),
		Course:          g.vehicle.Course(),
		Route:           g.route,
		ViewportPadding: g.config.ViewportPadding,
	})
}

// Update 处理输入并推进一帧
func (g *Game) Update() error {
	dt := 1.0 / float64(ebiten.TPS())

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyF):
		g.camera.SetState(types.CameraStateFollowing)
	case inpututil.IsKeyJustPressed(ebiten.KeyO):
		g.camera.SetState(types.CameraStateOverview)
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		g.camera.Stop()
	case inpututil.IsKeyJustPressed(ebiten.KeyD):
		g.showDebug = !g.showDebug
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		g.paused = !g.paused
	case inpututil.IsKeyJustPressed(ebiten.KeyJ):
		g.vehicle.Move(g.vehicle.RouteLength() / 2)
		g.pushViewport()
	case inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft):
		g.adjustHalo(-10)
	case inpututil.IsKeyJustPressed(ebiten.KeyBracketRight):
		g.adjustHalo(10)
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		g.saveTuning()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		if err := g.tuning.Reset(); err != nil {
			g.logger.Error().Err(err).Msg("failed to reset tuning")
		}
		g.transition.SetConfig(g.tuning.Config())
	}

	if pressed, p := pointerJustPressed(); pressed {
		g.panTo(p)
	}

	if !g.paused {
		g.vehicle.Advance(dt)
		g.sinceViewport += dt
		if g.sinceViewport >= viewportUpdateInterval {
			g.sinceViewport = 0
			g.pushViewport()
		}
	}

	g.camera.Update(dt)
	return nil
}

// panTo 模拟用户拖动地图：停止导航镜头并把点击位置移到画面中心
func (g *Game) panTo(p types.ScreenPoint) {
	g.camera.Stop()
	center := g.surface.Unproject(p)
	g.surface.SetCamera(types.CameraOptions{Center: &center})
	g.logger.Debug().Float64("lat", center.Latitude).Float64("lon", center.Longitude).Msg("user pan")
}

func (g *Game) adjustHalo(delta float64) {
	cfg := g.transition.Config()
	cfg.OffscreenHalo += delta
	g.transition.SetConfig(cfg)
	g.logger.Info().Float64("halo", cfg.OffscreenHalo).Msg("offscreen halo changed")
}

func (g *Game) saveTuning() {
	if err := g.tuning.SetConfig(g.transition.Config()); err != nil {
		g.logger.Error().Err(err).Msg("invalid tuning")
		return
	}
	if err := g.tuning.Save(); err != nil {
		g.logger.Error().Err(err).Msg("failed to save tuning")
	}
}

// Draw 绘制路线、车辆与调试层
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	for i := 0; i+1 < len(g.route); i++ {
		a := g.surface.Project(g.route[i])
		b := g.surface.Project(g.route[i+1])
		vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 4, routeColor, true)
	}

	p := g.surface.Project(g.vehicle.Location())
	vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), 6, vehicleColor, true)

	if g.showDebug {
		g.debug.Draw(screen)
	}

	status := fmt.Sprintf("TPS: %.0f  State: %s  %s", ebiten.ActualTPS(), g.camera.State(), g.lastTransition)
	ebitenutil.DebugPrintAt(screen, status, 8, g.height-36)
	ebitenutil.DebugPrintAt(screen, "F follow  O overview  Esc stop  J jump  S save", 8, g.height-20)
}

// Layout 窗口尺寸变化时同步渲染表面的视口
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.surface.Resize(float64(outsideWidth), float64(outsideHeight))
		g.pushViewport()
	}
	return outsideWidth, outsideHeight
}

func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Str("app", "camera_showcase").
		Logger()
}

func main() {
	flag.Parse()
	logger := newLogger()

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("初始化失败")
	}

	if err := storage.EnsureDataDir(); err != nil {
		logger.Warn().Err(err).Msg("tuning directory unavailable")
	}
	gdataManager, err := gdata.Open(gdata.Config{AppName: "navcam_showcase"})
	if err != nil {
		logger.Warn().Err(err).Msg("gdata unavailable, tuning will not be persisted")
		gdataManager = nil
	}

	game, err := NewGame(cfg, gdataManager, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("初始化失败")
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60)

	if err := ebiten.RunGame(game); err != nil {
		logger.Fatal().Err(err).Msg("运行失败")
	}
}
