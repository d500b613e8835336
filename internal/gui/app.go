package gui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/gridreplay/internal/config"
	"github.com/san-kum/gridreplay/internal/export"
	"github.com/san-kum/gridreplay/internal/logging"
	"github.com/san-kum/gridreplay/internal/playback"
	"github.com/san-kum/gridreplay/internal/render"
	"github.com/san-kum/gridreplay/internal/replay"
	"github.com/san-kum/gridreplay/internal/storage"
)

const (
	statusHeight = 24
	fontSize     = 16
	minWidth     = 320
)

var (
	ColBar     = rl.NewColor(20, 20, 20, 255)
	ColText    = rl.NewColor(200, 200, 200, 255)
	ColError   = rl.NewColor(255, 80, 80, 255)
	ColMessage = rl.NewColor(120, 220, 140, 255)
)

// keyBindings maps window keys to playback keys. Each playback key may have several.
var keyBindings = []struct {
	raylib int32
	key    playback.Key
}{
	{rl.KeyLeft, playback.KeyStepBack},
	{rl.KeyRight, playback.KeyStepForward},
	{rl.KeyUp, playback.KeyPageBack},
	{rl.KeyDown, playback.KeyPageForward},
	{rl.KeyZ, playback.KeyJumpStart},
	{rl.KeyHome, playback.KeyJumpStart},
	{rl.KeyX, playback.KeyJumpEnd},
	{rl.KeyEnd, playback.KeyJumpEnd},
	{rl.KeyP, playback.KeyToggleProduction},
}

var toggleBindings = []struct {
	raylib int32
	name   string
}{
	{rl.KeyN, playback.ShowNeutrals},
	{rl.KeyS, playback.ShowStrength},
	{rl.KeyD, playback.DarkTheme},
}

type Options struct {
	Record     *replay.MatchRecord
	ReplayPath string
	Config     *config.Config
	Recorder   *export.Recorder
	Log        *logging.Logger
}

// App is the window viewer. The board is cached in a render texture and
// only redrawn when the controller asks for it.
type App struct {
	ctrl       *playback.Controller
	input      playback.Input
	rec        *replay.MatchRecord
	replayPath string
	cfg        *config.Config
	recorder   *export.Recorder
	log        *logging.Logger

	status  string
	message string
	msgErr  bool
	title   string

	boardW, boardH int32
	board          rl.RenderTexture2D
	sinceTick      time.Duration
}

func NewApp(opts Options) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	log := opts.Log
	if log == nil {
		log = logging.NopLogger()
	}
	recorder := opts.Recorder
	if recorder == nil {
		recorder = export.NewRecorder(nil, log)
	}
	ctrlOpts, err := cfg.ControllerOptions()
	if err != nil {
		return nil, err
	}

	a := &App{
		rec:        opts.Record,
		replayPath: opts.ReplayPath,
		cfg:        cfg,
		recorder:   recorder,
		log:        log,
	}
	ctrlOpts = append(ctrlOpts,
		playback.WithLogger(log),
		playback.WithStatusSink(playback.StatusFunc(func(text string) { a.status = text })),
	)
	a.ctrl = playback.New(opts.Record, ctrlOpts...)

	w, h := render.BoardSize(opts.Record, a.ctrl.Params())
	a.boardW, a.boardH = int32(w), int32(h)
	return a, nil
}

// Run opens the window and blocks until it is closed.
func Run(opts Options) error {
	a, err := NewApp(opts)
	if err != nil {
		return err
	}

	rl.SetTraceLogLevel(rl.LogWarning)
	rl.InitWindow(max(a.boardW, minWidth), a.boardH+statusHeight, a.ctrl.Title())
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)
	rl.SetExitKey(rl.KeyQ)

	a.board = rl.LoadRenderTexture(a.boardW, a.boardH)
	defer rl.UnloadRenderTexture(a.board)

	a.log.Info("window opened", "width", a.boardW, "height", a.boardH)
	a.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		a.Update(time.Duration(rl.GetFrameTime() * float32(time.Second)))
		a.Draw()
	}
}

// Update polls input every frame but advances playback on the configured tick.
func (a *App) Update(frame time.Duration) {
	if !rl.IsWindowFocused() {
		a.input.ReleaseAll()
	} else {
		for _, b := range keyBindings {
			a.input.Sync(b.key, a.anyDown(b.key))
		}
	}

	for _, t := range toggleBindings {
		if rl.IsKeyPressed(t.raylib) {
			if err := a.ctrl.FlipToggle(t.name); err != nil {
				a.setError(err.Error())
			}
		}
	}
	if rl.IsKeyPressed(rl.KeyE) {
		a.exportTurn()
	}

	mx, my := rl.GetMouseX(), rl.GetMouseY()
	size := a.ctrl.Params().CellSize
	if size <= 0 {
		size = render.DefaultCellSize
	}
	if mx < 0 || my < 0 || my >= a.boardH {
		a.ctrl.ClearCursor()
	} else {
		a.ctrl.MoveCursor(int(mx)/size, int(my)/size)
	}

	a.sinceTick += frame
	if a.sinceTick >= a.cfg.TickInterval() {
		a.sinceTick = 0
		a.input.Tick(a.ctrl)
	}

	if title := a.ctrl.Title(); title != a.title {
		a.title = title
		rl.SetWindowTitle(title)
	}
}

// anyDown folds every window key bound to k into one level.
func (a *App) anyDown(k playback.Key) bool {
	for _, b := range keyBindings {
		if b.key == k && rl.IsKeyDown(b.raylib) {
			return true
		}
	}
	return false
}

func (a *App) exportTurn() {
	turn := a.ctrl.Turn()
	dest := storage.DefaultDestination(a.replayPath, turn, a.cfg.Export.Extension)
	res, err := a.recorder.Export(export.Request{
		Record:      a.rec,
		ReplayPath:  a.replayPath,
		Turn:        turn,
		Format:      export.FormatText,
		Destination: dest,
		Params:      a.ctrl.Params(),
	})
	if err != nil {
		a.setError(fmt.Sprintf("export failed: %v", err))
		return
	}
	a.message, a.msgErr = "exported to "+res.Destination, false
}

func (a *App) setError(text string) { a.message, a.msgErr = text, true }

func (a *App) Draw() {
	if a.ctrl.NeedsRedraw() {
		rl.BeginTextureMode(a.board)
		drawBoard(a.rec, a.ctrl.Turn(), a.ctrl.Params(), a.log)
		rl.EndTextureMode()
		a.ctrl.MarkRendered()
	}

	rl.BeginDrawing()
	rl.ClearBackground(ColBar)

	// render textures are stored upside down
	src := rl.NewRectangle(0, 0, float32(a.boardW), -float32(a.boardH))
	rl.DrawTextureRec(a.board.Texture, src, rl.NewVector2(0, 0), rl.White)

	y := a.boardH + (statusHeight-fontSize)/2
	rl.DrawText(a.status, 6, y, fontSize, ColText)
	if a.message != "" {
		col := ColMessage
		if a.msgErr {
			col = ColError
		}
		w := rl.MeasureText(a.message, fontSize)
		rl.DrawText(a.message, max(a.boardW, minWidth)-w-6, y, fontSize, col)
	}
	rl.EndDrawing()
}
