package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/navcam/pkg/types"
)

// pointerJustPressed 检查本帧是否刚发生点击或触摸，优先检测触摸
//
// 返回：
//   - bool: 是否按下
//   - types.ScreenPoint: 按下位置（屏幕坐标）
func pointerJustPressed() (bool, types.ScreenPoint) {
	if touchIDs := inpututil.AppendJustPressedTouchIDs(nil); len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return true, types.ScreenPoint{X: float64(x), Y: float64(y)}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return true, types.ScreenPoint{X: float64(x), Y: float64(y)}
	}
	return false, types.ScreenPoint{}
}
