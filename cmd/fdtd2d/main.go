// Command fdtd2d runs a single 2-D FDTD scene from the command line and
// reports basic run statistics. Flag/profiling/logging shape adapted from
// the 0x5844/wave2D CLI.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"os/signal"
	"runtime"
	"runtime/pprof"
	"syscall"
	"time"

	"github.com/0x5844/fdtd2d"
	"gonum.org/v1/gonum/mat"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// scene is the on-disk JSON description of a run, loaded with -scene.
type scene struct {
	Nx       int       `json:"nx"`
	Ny       int       `json:"ny"`
	Dx       float64   `json:"dx"`
	Dy       float64   `json:"dy"`
	Dt       float64   `json:"dt"`
	PMLWidth int       `json:"pml_width"`
	PMLOrder float64   `json:"pml_order"`
	PMLSigma float64   `json:"pml_sigma_max"`
	Mu       float64   `json:"mu"`
	NSteps   int       `json:"n_steps"`
	Source   sourceDef `json:"source"`
}

type sourceDef struct {
	Kind             string    `json:"kind"` // "multi_wavelength" or "impulsion"
	Omega            []float64 `json:"omega,omitempty"`
	Amplitudes       []float64 `json:"amplitudes,omitempty"`
	Phase            []float64 `json:"phase,omitempty"`
	ImpulseAmplitude float64   `json:"impulse_amplitude,omitempty"`
	Tau              float64   `json:"tau,omitempty"`
	T0               float64   `json:"t0,omitempty"`
	Indices          [][2]int  `json:"indices"`
}

func defaultScene() scene {
	return scene{
		Nx: 200, Ny: 200,
		Dx: 1e-6, Dy: 1e-6, Dt: 1e-15,
		PMLWidth: 20, PMLOrder: 3, PMLSigma: 1e9,
		Mu:     fdtd2d.VacuumPermeability,
		NSteps: 2000,
		Source: sourceDef{
			Kind:             "impulsion",
			ImpulseAmplitude: 1,
			Tau:              5e-14,
			T0:               2e-13,
			Indices:          [][2]int{{100, 100}},
		},
	}
}

func loadScene(path string) (scene, error) {
	sc := defaultScene()
	f, err := os.Open(path)
	if err != nil {
		return sc, err
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(&sc); err != nil {
		return sc, err
	}
	return sc, nil
}

func main() {
	var (
		sceneFile  = flag.String("scene", "", "JSON scene file to load (defaults to a small impulsion demo)")
		workers    = flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
		chunkSize  = flag.Int("chunk-size", 8, "rows per parallel task")
		probeI     = flag.Int("probe-i", -1, "row index of an extra probe point to report (-1 disables)")
		probeJ     = flag.Int("probe-j", -1, "column index of an extra probe point to report")
		profileCPU = flag.String("profile-cpu", "", "write a CPU profile to this file")
		profileMem = flag.String("profile-mem", "", "write a heap profile to this file")
		showVer    = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVer {
		log.Printf("fdtd2d %s", Version)
		return
	}

	if *profileCPU != "" {
		f, err := os.Create(*profileCPU)
		if err != nil {
			log.Fatalf("create CPU profile: %v", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatalf("start CPU profile: %v", err)
		}
		defer pprof.StopCPUProfile()
	}

	sc := defaultScene()
	if *sceneFile != "" {
		loaded, err := loadScene(*sceneFile)
		if err != nil {
			log.Fatalf("load scene %s: %v", *sceneFile, err)
		}
		sc = loaded
	}

	log.Printf("grid %dx%d, dx=%g dy=%g dt=%g, %d steps", sc.Nx, sc.Ny, sc.Dx, sc.Dy, sc.Dt, sc.NSteps)

	cfg, mesh, fields, sources, err := build(sc)
	if err != nil {
		log.Fatalf("build scene: %v", err)
	}

	var rec fdtd2d.Recorder
	if *probeI >= 0 && *probeJ >= 0 {
		rec = fdtd2d.NewProbeRecorder(cfg.NumSteps(), [][2]int{{*probeI, *probeJ}})
	} else {
		rec = fdtd2d.NewFullRecorder(cfg.NumSteps(), sc.Nx, sc.Ny)
	}

	engine, err := fdtd2d.NewEngine(cfg, mesh, fields, sources, *workers, *chunkSize)
	if err != nil {
		log.Fatalf("new engine: %v", err)
	}
	defer engine.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	if err := engine.Run(ctx, rec); err != nil {
		log.Fatalf("run: %v", err)
	}
	elapsed := time.Since(start)

	log.Printf("completed %d steps in %v (%.1f steps/s)", cfg.NumSteps(), elapsed, float64(cfg.NumSteps())/elapsed.Seconds())

	if *profileMem != "" {
		f, err := os.Create(*profileMem)
		if err != nil {
			log.Printf("create heap profile: %v", err)
		} else {
			defer f.Close()
			runtime.GC()
			if err := pprof.WriteHeapProfile(f); err != nil {
				log.Printf("write heap profile: %v", err)
			}
		}
	}

	if pr, ok := rec.(*fdtd2d.ProbeRecorder); ok {
		last := pr.Data[len(pr.Data)-1]
		log.Printf("final probe value: %v", last)
	}
}

func build(sc scene) (*fdtd2d.Config, *fdtd2d.MeshSet, *fdtd2d.FieldSet, []fdtd2d.Source, error) {
	timeStamps := fdtd2d.NewUniformTimeStamps(sc.Dt, sc.NSteps)
	cfg, err := fdtd2d.NewConfig(sc.Dx, sc.Dy, sc.Dt, sc.Nx, sc.Ny, timeStamps)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	sigmaX, sigmaY, err := fdtd2d.BuildPMLProfile(sc.Nx, sc.Ny, sc.PMLWidth, sc.PMLOrder, sc.PMLSigma)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	epsilon := mat.NewDense(sc.Nx, sc.Ny, nil)
	n2 := mat.NewDense(sc.Nx, sc.Ny, nil)
	gamma := mat.NewDense(sc.Nx, sc.Ny, nil)
	for i := 0; i < sc.Nx; i++ {
		for j := 0; j < sc.Ny; j++ {
			epsilon.Set(i, j, fdtd2d.VacuumPermittivity)
		}
	}

	mesh, err := fdtd2d.NewMeshSet(cfg, epsilon, n2, gamma, sigmaX, sigmaY, sc.Mu)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	fields := fdtd2d.NewFieldSet(sc.Nx, sc.Ny)

	src, err := buildSource(sc.Source, sc.Nx, sc.Ny)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	return cfg, mesh, fields, []fdtd2d.Source{src}, nil
}

func buildSource(def sourceDef, nx, ny int) (fdtd2d.Source, error) {
	switch def.Kind {
	case "multi_wavelength":
		return fdtd2d.NewMultiWavelengthSource(def.Omega, def.Amplitudes, def.Phase, def.Indices, nx, ny)
	default:
		return fdtd2d.NewImpulsionSource(def.ImpulseAmplitude, def.Tau, def.T0, def.Indices, nx, ny)
	}
}
