package main

import (
	"context"
	"fmt"
	"log"

	"github.com/samber/lo"

	"github.com/artienterprises/cartonview/pkg/annotate"
	"github.com/artienterprises/cartonview/pkg/camera"
	"github.com/artienterprises/cartonview/pkg/config"
	"github.com/artienterprises/cartonview/pkg/engine"
	"github.com/artienterprises/cartonview/pkg/kernel"
	"github.com/artienterprises/cartonview/pkg/kernel/sdfx"
	"github.com/artienterprises/cartonview/pkg/ply"
	"github.com/artienterprises/cartonview/pkg/strength"
	"github.com/artienterprises/cartonview/pkg/tessellate"
	"github.com/artienterprises/cartonview/pkg/viewer"
)

// mobileBreakpoint is the viewport width below which the hero drops its
// explode animation and labels.
const mobileBreakpoint = 768

// App is the Wails backend. It exposes methods to the frontend via bindings.
type App struct {
	ctx    context.Context
	engine *engine.Engine
	kernel *sdfx.SdfxKernel
	viewer *viewer.Viewer
	hero   *viewer.Hero
}

// MeshData is the JSON-serializable mesh format sent to the frontend.
// Vertices are world-space; Material names an entry of SceneData.Materials.
type MeshData struct {
	Vertices      []float32 `json:"vertices"`
	Normals       []float32 `json:"normals"`
	Indices       []uint32  `json:"indices"`
	PartName      string    `json:"partName"`
	Material      string    `json:"material"`
	FaceColors    []string  `json:"faceColors"` // per box face when set
	Color         string    `json:"color"`
	CastShadow    bool      `json:"castShadow"`
	ReceiveShadow bool      `json:"receiveShadow"`
}

// EvalErrorData is a JSON-serializable eval error for the frontend.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// SceneData is everything the frontend draws for the configurator.
type SceneData struct {
	ID          string                   `json:"id"`
	Config      config.Configuration     `json:"config"`
	Descriptors []kernel.Descriptor      `json:"descriptors"`
	Meshes      []MeshData               `json:"meshes"`
	Labels      []kernel.LabelAnchor     `json:"labels"`
	Annotations annotate.Set             `json:"annotations"`
	Outline     []annotate.Line          `json:"outline"`
	Materials   []kernel.Material        `json:"materials"`
	Strength    strength.Result          `json:"strength"`
	Specs       viewer.Specs             `json:"specs"`
	Errors      []config.ValidationError `json:"errors"`
}

// EvalResult is the full result returned to the frontend.
type EvalResult struct {
	Scene    *SceneData      `json:"scene"`
	Errors   []EvalErrorData `json:"errors"`
	Warnings []EvalErrorData `json:"warnings"`
}

// HeroData is one frame of the landing-page preview.
type HeroData struct {
	Meshes       []MeshData           `json:"meshes"`
	Labels       []kernel.LabelAnchor `json:"labels"`
	LabelOpacity float64              `json:"labelOpacity"`
	Outline      []annotate.Line      `json:"outline"`
	Materials    []kernel.Material    `json:"materials"`
	Transform    camera.Transform     `json:"transform"`
}

// SuggestionData is the smart-suggestion panel.
type SuggestionData struct {
	Suggestion strength.Suggestion `json:"suggestion"`
	Error      string              `json:"error"`
}

// NewApp creates a new App with the default settings.
func NewApp() *App {
	app, err := NewAppWithSettings(config.DefaultSettings())
	if err != nil {
		// Built-in settings are validated by tests.
		panic(err)
	}
	return app
}

// NewAppWithSettings creates an App with its own viewer and hero.
func NewAppWithSettings(s config.Settings) (*App, error) {
	v, err := viewer.New(s)
	if err != nil {
		return nil, err
	}
	return &App{
		engine: engine.NewEngineWithSettings(s),
		kernel: sdfx.New(),
		viewer: v,
		hero:   viewer.NewHero(s.HeroCamera, s.Timeline, viewer.DefaultHeroOptions(), false),
	}, nil
}

// startup is called by Wails on app startup. The context is saved
// so we can call Wails runtime methods later if needed.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
}

// meshes triangulates descriptors in world space for the renderer. A
// tessellation failure is logged and yields no meshes.
func (a *App) meshes(ds []kernel.Descriptor, materials []kernel.Material) []MeshData {
	parts, err := tessellate.Tessellate(ds, materials, a.kernel)
	if err != nil {
		log.Printf("Tessellate error: %v", err)
		return []MeshData{}
	}
	return lo.Map(parts, func(p tessellate.Part, _ int) MeshData {
		faces := lo.Map(p.FaceMaterials, func(m kernel.Material, _ int) string { return m.Color })
		return MeshData{
			Vertices:      p.Mesh.Vertices,
			Normals:       p.Mesh.Normals,
			Indices:       p.Mesh.Indices,
			PartName:      p.Mesh.PartName,
			Material:      p.Material.Name,
			FaceColors:    faces,
			Color:         p.Material.Color,
			CastShadow:    p.Descriptor.CastShadow,
			ReceiveShadow: p.Descriptor.ReceiveShadow,
		}
	})
}

// Scene returns the current configurator scene.
func (a *App) Scene() SceneData {
	sc := a.viewer.Scene()
	return SceneData{
		ID:          a.viewer.ID(),
		Config:      sc.Config,
		Descriptors: sc.Descriptors,
		Meshes:      a.meshes(sc.Descriptors, sc.Materials),
		Labels:      lo.Ternary(sc.Labels == nil, []kernel.LabelAnchor{}, sc.Labels),
		Annotations: sc.Annotations,
		Outline:     lo.Ternary(sc.Outline == nil, []annotate.Line{}, sc.Outline),
		Materials:   sc.Materials,
		Strength:    sc.Strength,
		Specs:       a.viewer.Specs(),
		Errors:      []config.ValidationError{},
	}
}

// withError returns the scene with err attached as a validation finding.
func (a *App) withError(field string, err error) SceneData {
	sd := a.Scene()
	if err != nil {
		log.Printf("rejected %s: %v", field, err)
		sd.Errors = append(sd.Errors, config.ValidationError{
			Field:    field,
			Message:  err.Error(),
			Severity: config.SeverityError,
		})
	}
	return sd
}

// SetLength sets the length in millimeters.
func (a *App) SetLength(mm float64) SceneData {
	return a.withError("length", a.viewer.SetLength(mm))
}

// SetWidth sets the width in millimeters.
func (a *App) SetWidth(mm float64) SceneData {
	return a.withError("width", a.viewer.SetWidth(mm))
}

// SetHeight sets the height in millimeters.
func (a *App) SetHeight(mm float64) SceneData {
	return a.withError("height", a.viewer.SetHeight(mm))
}

// SetDimension parses a typed value for "length", "width" or "height".
func (a *App) SetDimension(field, value string) SceneData {
	mm, err := config.ParseDimension(value)
	if err != nil {
		return a.withError(field, err)
	}
	switch field {
	case "length":
		return a.SetLength(mm)
	case "width":
		return a.SetWidth(mm)
	case "height":
		return a.SetHeight(mm)
	}
	return a.withError(field, fmt.Errorf("unknown dimension %q", field))
}

// SetPly selects a wall construction by key, e.g. "5".
func (a *App) SetPly(key string) SceneData {
	p, err := ply.Parse(key)
	if err != nil {
		return a.withError("ply", fmt.Errorf("%w: %w", config.ErrUnknownPly, err))
	}
	return a.withError("ply", a.viewer.SetPly(p))
}

// SetUnit selects the display unit, "mm" or "in".
func (a *App) SetUnit(key string) SceneData {
	u, err := annotate.ParseUnit(key)
	if err != nil {
		return a.withError("unit", fmt.Errorf("%w: %w", config.ErrUnknownUnit, err))
	}
	return a.withError("unit", a.viewer.SetUnit(u))
}

// ToggleExploded flips between the closed carton and the layer stack.
func (a *App) ToggleExploded() SceneData {
	a.viewer.ToggleExploded()
	return a.Scene()
}

// Reset eases the camera home and closes the carton.
func (a *App) Reset() SceneData {
	a.viewer.Reset()
	return a.Scene()
}

// PointerDown starts a drag on the configurator.
func (a *App) PointerDown(x, y float64) { a.viewer.Camera().PointerDown(x, y) }

// PointerMove feeds pointer movement; ignored unless dragging.
func (a *App) PointerMove(x, y float64) { a.viewer.Camera().PointerMove(x, y) }

// PointerUp ends a drag wherever the pointer is released.
func (a *App) PointerUp() { a.viewer.Camera().PointerUp() }

// Wheel zooms the configurator camera.
func (a *App) Wheel(delta float64) { a.viewer.Camera().Wheel(delta) }

// Pinch zooms by a touch gesture scale factor.
func (a *App) Pinch(scale float64) { a.viewer.Camera().Pinch(scale) }

// PinchActive marks a two-finger gesture on the configurator.
func (a *App) PinchActive(active bool) { a.viewer.Camera().PinchActive(active) }

// Frame advances the configurator camera by dt seconds.
func (a *App) Frame(dt float64) camera.Transform {
	a.viewer.Advance(dt)
	return a.viewer.CurrentTransform()
}

// HeroFrame advances the hero by dt seconds and returns what to draw.
func (a *App) HeroFrame(dt float64) HeroData {
	h := a.hero
	h.Advance(dt)
	return HeroData{
		Meshes:       a.meshes(h.Descriptors(), h.Materials()),
		Labels:       lo.Ternary(h.Labels() == nil, []kernel.LabelAnchor{}, h.Labels()),
		LabelOpacity: h.LabelOpacity(),
		Outline:      h.Outline(),
		Materials:    h.Materials(),
		Transform:    h.CurrentTransform(),
	}
}

// HeroResize reports the viewport width so the hero can switch layouts.
func (a *App) HeroResize(width int) {
	a.hero.SetMobile(width < mobileBreakpoint)
}

// HeroVisible pauses or resumes the hero.
func (a *App) HeroVisible(visible bool) {
	a.hero.SetVisible(visible)
}

// HeroHover marks the pointer over the hero, which pauses auto-rotation.
func (a *App) HeroHover(in bool) {
	a.hero.Camera().SetHover(in)
}

// HeroPointerDown starts a drag on the hero.
func (a *App) HeroPointerDown(x, y float64) { a.hero.Camera().PointerDown(x, y) }

// HeroPointerMove feeds pointer movement to the hero; ignored unless dragging.
func (a *App) HeroPointerMove(x, y float64) { a.hero.Camera().PointerMove(x, y) }

// HeroPointerUp ends a hero drag wherever the pointer is released.
func (a *App) HeroPointerUp() { a.hero.Camera().PointerUp() }

// HeroTouch marks a touch on the hero, which defers the explode like a
// drag does.
func (a *App) HeroTouch(active bool) { a.hero.Camera().PinchActive(active) }

// Suggest recommends a ply for a product weight and shipping type.
func (a *App) Suggest(weightKg float64, shipping string) SuggestionData {
	s, err := a.viewer.Recommend(weightKg, strength.Shipping(shipping))
	if err != nil {
		return SuggestionData{Error: err.Error()}
	}
	return SuggestionData{Suggestion: s}
}

// Evaluate takes a carton script and applies the resulting configuration.
func (a *App) Evaluate(source string) EvalResult {
	result := EvalResult{
		Errors:   []EvalErrorData{},
		Warnings: []EvalErrorData{},
	}

	res, err := a.engine.EvaluateFull(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		log.Printf("Evaluate fatal error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}

	result.Warnings = lo.Map(res.Warnings, func(w engine.EvalWarning, _ int) EvalErrorData {
		return EvalErrorData{Line: w.Line, Col: w.Col, Message: w.Message}
	})
	if len(res.Errors) > 0 {
		result.Errors = lo.Map(res.Errors, func(e engine.EvalError, _ int) EvalErrorData {
			return EvalErrorData{Line: e.Line, Col: e.Col, Message: e.Message}
		})
		return result
	}

	if errs := a.viewer.Apply(*res.Config); config.HasErrors(errs) {
		result.Errors = lo.Map(errs, func(e config.ValidationError, _ int) EvalErrorData {
			return EvalErrorData{Message: e.Error()}
		})
		return result
	}
	sd := a.Scene()
	result.Scene = &sd
	return result
}

// ExportSTL writes the current scene to path and returns an error message,
// empty on success.
func (a *App) ExportSTL(path string) string {
	if err := a.kernel.SaveSTL(path, a.viewer.Scene().Descriptors); err != nil {
		log.Printf("ExportSTL: %v", err)
		return err.Error()
	}
	return ""
}
