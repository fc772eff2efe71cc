package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v2"

	"coopdoor/clock"
	"coopdoor/display"
	"coopdoor/input"
	"coopdoor/motor"
	"coopdoor/sched"
	"coopdoor/screen"
	"coopdoor/sensor"
	"coopdoor/store"
)

var myBuild string

// App holds the application state and dependencies.
type App struct {
	cfg     *Config
	clock   *clock.System
	store   *store.Store
	disp    display.Display
	keys    input.Source
	motors  []motor.Motor
	runner  *motor.Runner
	limits  []*sensor.Limit
	mgr     *screen.Manager
	sched   *sched.Scheduler
	ctx     context.Context
	cancel  context.CancelFunc
}

func main() {
	fmt.Printf("coopdoor build %s\n", myBuild)

	cfgfile := flag.String("cfg", "coopdoor.cfg", "Config file")
	flag.Parse()

	// Load configuration
	f, err := os.Open(*cfgfile)
	if err != nil {
		log.Fatalf("Open config: %v", err)
	}
	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		log.Fatalf("Decode config: %v", err)
	}
	f.Close()

	if cfg.StateFile == "" {
		cfg.StateFile = "coopdoor.json"
	}

	// Create application context
	ctx, cancel := context.WithCancel(context.Background())

	app := &App{
		cfg:    &cfg,
		ctx:    ctx,
		cancel: cancel,
	}

	app.clock = clock.NewSystem()
	if _, valid := app.clock.Now(); !valid {
		log.Printf("Clock has no time reference; schedules idle until it is set")
	}

	app.store = store.Open(afero.NewOsFs(), cfg.StateFile)

	// Initialize display
	app.disp, err = display.New(cfg.Display)
	if err != nil {
		log.Fatalf("Init display: %v", err)
	}

	// Initialize input source
	app.keys, err = input.New(cfg.Input)
	if err != nil {
		log.Fatalf("Init input: %v", err)
	}

	// Initialize motors and bind their actuator identities
	app.runner = motor.NewRunner()
	refs := make([]screen.MotorRef, 0, len(cfg.Motors))
	for _, mc := range cfg.Motors {
		m, err := motor.New(mc.Drive)
		if err != nil {
			log.Fatalf("Init motor %s: %v", mc.Name, err)
		}
		app.motors = append(app.motors, m)

		ref := screen.MotorRef{Name: mc.Name, ID: mc.ID}
		app.runner.Register(ref.OpenID(), m, mc.ID, true)
		app.runner.Register(ref.CloseID(), m, mc.ID, false)
		refs = append(refs, ref)
	}

	// Limit switches stop a motor when the door reaches end of travel
	app.limits, err = sensor.New(cfg.Limits, app.runner.Stop)
	if err != nil {
		log.Fatalf("Init limit switches: %v", err)
	}

	// Menu over the shared store
	scenes := &screen.Scenes{Store: app.store, Clock: app.clock, Motors: refs}
	app.mgr = screen.NewManager(app.disp, scenes.Root())

	// Scheduler over the same store
	app.sched = sched.New(app.store, app.clock, app.runner,
		time.Duration(cfg.TickSecs)*time.Second)

	// Start background loops
	go app.sched.Run(ctx)
	go app.inputLoop()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	fmt.Println("Shutting down...")
	cancel()

	// Cleanup
	app.keys.Close()
	app.runner.StopAll()
	for _, m := range app.motors {
		m.Release()
	}
	sensor.Release(app.limits)
	app.disp.Release()

	fmt.Println("Shutdown complete")
}

// inputLoop is the UI task: it feeds key presses to the scene manager
// and refreshes the idle clock display. The manager is only ever
// touched from this goroutine.
func (app *App) inputLoop() {
	keys := make(chan screen.Key)
	go func() {
		for {
			k, err := app.keys.Read(app.ctx)
			if err != nil {
				if app.ctx.Err() != nil {
					return
				}
				log.Printf("Input: %v", err)
				time.Sleep(time.Second)
				continue
			}
			select {
			case keys <- k:
			case <-app.ctx.Done():
				return
			}
		}
	}()

	// The idle scene shows the wall clock; redraw it even without input.
	refresh := time.NewTicker(30 * time.Second)
	defer refresh.Stop()

	for {
		select {
		case <-app.ctx.Done():
			return
		case k := <-keys:
			app.mgr.Dispatch(screen.Event{Key: k})
		case <-refresh.C:
			app.mgr.Render()
		}
	}
}
