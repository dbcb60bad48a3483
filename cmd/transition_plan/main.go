// cmd/transition_plan/main.go
// 打印两个镜头之间的过渡规划，并可逐帧模拟过渡过程
//
// 用法：
//   go run ./cmd/transition_plan --from=37.7749,-122.4194,10,0,0 --to=37.8199,-122.4783,16,45,45
//   go run ./cmd/transition_plan --to=... --overview --simulate --every=15

package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/decker502/navcam/pkg/config"
	"github.com/decker502/navcam/pkg/geo"
	"github.com/decker502/navcam/pkg/surface"
	"github.com/decker502/navcam/pkg/systems"
	"github.com/decker502/navcam/pkg/types"
)

var (
	configPath = flag.String("config", "", "过渡常量文件（YAML），为空时使用默认值")
	fromFlag   = flag.String("from", "37.7749,-122.4194,10,0,0", "起始镜头 lat,lon,zoom,bearing,pitch")
	toFlag     = flag.String("to", "", "目标镜头 lat,lon,zoom,bearing,pitch")
	width      = flag.Float64("width", 400, "视口宽度（点）")
	height     = flag.Float64("height", 800, "视口高度（点）")
	padding    = flag.Float64("padding", 0, "四边内边距（点）")
	overview   = flag.Bool("overview", false, "按总览状态规划")
	simulate   = flag.Bool("simulate", false, "以 60 帧/秒模拟过渡并输出镜头")
	every      = flag.Int("every", 10, "模拟时每隔多少帧输出一次")
	verbose    = flag.Bool("verbose", false, "详细日志")
)

// axisReport 单轴输出
type axisReport struct {
	Parameter string  `yaml:"parameter"`
	Delta     float64 `yaml:"delta"`
	Duration  float64 `yaml:"duration"`
	Delay     float64 `yaml:"delay"`
	End       float64 `yaml:"end"`
}

// stageReport 阶段输出
type stageReport struct {
	Kind     string           `yaml:"kind"`
	Target   types.CameraPose `yaml:"target"`
	Duration float64          `yaml:"duration"`
	Axes     []axisReport     `yaml:"axes"`
}

// planReport 规划输出
type planReport struct {
	Kind      string        `yaml:"kind"`
	Mode      string        `yaml:"mode"`
	Offscreen bool          `yaml:"offscreen"`
	Duration  float64       `yaml:"duration"`
	Stages    []stageReport `yaml:"stages"`
}

// parsePose 解析 "lat,lon,zoom,bearing,pitch"
func parsePose(s string) (types.CameraPose, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 5 {
		return types.CameraPose{}, fmt.Errorf("镜头格式应为 lat,lon,zoom,bearing,pitch: %q", s)
	}
	values := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return types.CameraPose{}, fmt.Errorf("解析 %q 失败: %w", p, err)
		}
		values[i] = v
	}

	center := geo.NewCoordinate(values[0], values[1])
	if !center.IsValid() {
		return types.CameraPose{}, fmt.Errorf("坐标非法: %v", center)
	}
	return types.CameraPose{
		Center:  center,
		Zoom:    values[2],
		Bearing: values[3],
		Pitch:   values[4],
	}, nil
}

func buildReport(plan systems.TransitionPlan, offscreen bool) planReport {
	report := planReport{
		Kind:      plan.Kind.String(),
		Mode:      plan.Mode.String(),
		Offscreen: offscreen,
		Duration:  plan.Duration(),
	}
	for _, stage := range plan.Stages {
		sr := stageReport{
			Kind:     stage.Kind.String(),
			Target:   stage.Target,
			Duration: stage.Duration(),
		}
		for _, a := range stage.Axes {
			sr.Axes = append(sr.Axes, axisReport{
				Parameter: a.Parameter.String(),
				Delta:     a.Delta,
				Duration:  a.Duration,
				Delay:     a.Delay,
				End:       a.End(),
			})
		}
		report.Stages = append(report.Stages, sr)
	}
	return report
}

func run(logger zerolog.Logger) error {
	cfg := config.DefaultCameraTransitionConfig()
	if *configPath != "" {
		loaded, err := config.LoadCameraTransitionConfig(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	from, err := parsePose(*fromFlag)
	if err != nil {
		return fmt.Errorf("--from: %w", err)
	}
	to, err := parsePose(*toFlag)
	if err != nil {
		return fmt.Errorf("--to: %w", err)
	}

	insets := types.UniformInsets(*padding)
	from.Padding = insets
	from.Anchor = types.Rect{Width: *width, Height: *height}.Inset(insets).Center()
	to.Padding = insets
	to.Anchor = from.Anchor

	s := surface.NewMercatorSurface(*width, *height, from)
	mode := types.CameraStateFollowing
	if *overview {
		mode = types.CameraStateOverview
	}

	plan := systems.PlanTransition(s, to, mode, cfg)
	report := buildReport(plan, systems.IsTargetOffscreen(s, to.Center, to.Padding, cfg.OffscreenHalo))

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("输出规划失败: %w", err)
	}
	if err := enc.Close(); err != nil {
		return err
	}

	if !*simulate {
		return nil
	}

	engine := systems.NewCameraTransitionSystem(s, cfg, logger)
	done := false
	if mode == types.CameraStateOverview {
		engine.TransitionToOverview(to.Options(), func() { done = true })
	} else {
		engine.TransitionToFollowing(to.Options(), func() { done = true })
	}

	const dt = 1.0 / 60
	step := max(*every, 1)
	for frame := 1; !done && frame <= 60*30; frame++ {
		engine.Update(dt)
		if frame%step == 0 || done {
			fmt.Printf("t=%6.3fs %s\n", float64(frame)*dt, s.CameraState())
		}
	}
	if !done {
		return fmt.Errorf("过渡在 30 秒内没有结束")
	}
	logger.Info().Msg("transition completed")
	return nil
}

func main() {
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Str("app", "transition_plan").
		Logger()

	if err := run(logger); err != nil {
		logger.Fatal().Err(err).Msg("transition plan failed")
	}
}
