package assets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/fsnotify/fsnotify"
	"github.com/spaghettifunk/wireframe/engine/assets/loaders"
	"github.com/spaghettifunk/wireframe/engine/core"
	"github.com/spaghettifunk/wireframe/engine/resources"
)

var (
	ErrModelNotFound  = errors.New("model not found")
	ErrEmptyModel     = errors.New("model has no geometry")
	ErrUnknownFormat  = errors.New("no loader registered for model format")
	ErrManagerClosed  = errors.New("model manager already closed")
	ErrAlreadyWatched = errors.New("model manager is already watching")
)

// ModelManager stores loaded model files keyed by an opaque handle. Entities only
// keep the handle; the geometry stays here and is never mutated once stored, a
// reload swaps in a new value.
type ModelManager struct {
	models  map[string]*resources.ObjFile
	sources map[string]string // absolute path -> handle
	loaders map[string]Loader // file extension -> loader

	mutex sync.RWMutex

	fsnotify *fsnotify.Watcher
	isClosed bool
	done     chan struct{}
	wg       sync.WaitGroup
	onReload func(handle string)
}

func NewModelManager() *ModelManager {
	mm := &ModelManager{
		models:  make(map[string]*resources.ObjFile),
		sources: make(map[string]string),
		loaders: make(map[string]Loader),
		done:    make(chan struct{}),
	}
	mm.registerLoader(".obj", &loaders.ModelLoader{})
	return mm
}

// Handle returns the handle a model loaded from source gets.
func Handle(source string) string {
	return strconv.FormatUint(xxhash.Sum64String(source), 16)
}

// Register loaders for each model format
func (mm *ModelManager) registerLoader(ext string, loader Loader) {
	mm.loaders[ext] = loader
}

// LoadModel reads and parses a model file and returns its handle. Loading the
// same path twice replaces the stored geometry and returns the same handle.
func (mm *ModelManager) LoadModel(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	obj, err := mm.parseFile(abs)
	if err != nil {
		return "", err
	}
	handle := Handle(abs)

	mm.mutex.Lock()
	mm.models[handle] = obj
	mm.sources[abs] = handle
	mm.mutex.Unlock()

	core.LogDebug("model '%s' loaded as %s (%d triangles)", path, handle, obj.TriangleCount())
	return handle, nil
}

// LoadModelFromObject stores an in-memory model. The handle derives from the name
// of its first object.
func (mm *ModelManager) LoadModelFromObject(obj *resources.ObjFile) (string, error) {
	if obj == nil || len(obj.Models) == 0 {
		return "", ErrEmptyModel
	}
	handle := Handle(obj.Models[0].Name)

	mm.mutex.Lock()
	defer mm.mutex.Unlock()
	mm.models[handle] = obj
	return handle, nil
}

// GetModel looks a handle up. Unknown handles report false.
func (mm *ModelManager) GetModel(handle string) (*resources.ObjFile, bool) {
	mm.mutex.RLock()
	defer mm.mutex.RUnlock()
	obj, ok := mm.models[handle]
	return obj, ok
}

// LookupModel is GetModel with an error for unknown handles.
func (mm *ModelManager) LookupModel(handle string) (*resources.ObjFile, error) {
	obj, ok := mm.GetModel(handle)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrModelNotFound, handle)
	}
	return obj, nil
}

// Handles returns every stored handle, sorted.
func (mm *ModelManager) Handles() []string {
	mm.mutex.RLock()
	defer mm.mutex.RUnlock()
	out := make([]string, 0, len(mm.models))
	for h := range mm.models {
		out = append(out, h)
	}
	sort.Strings(out)
	return out
}

// ListModels returns every stored model ordered by handle.
func (mm *ModelManager) ListModels() []*resources.ObjFile {
	handles := mm.Handles()
	out := make([]*resources.ObjFile, 0, len(handles))
	mm.mutex.RLock()
	defer mm.mutex.RUnlock()
	for _, h := range handles {
		if obj, ok := mm.models[h]; ok {
			out = append(out, obj)
		}
	}
	return out
}

// OnReload registers a callback fired after a watched file was reloaded.
// Must be set before Watch.
func (mm *ModelManager) OnReload(fn func(handle string)) {
	mm.onReload = fn
}

// Watch reloads loaded model files when they change on disk, until ctx is done
// or Close is called.
func (mm *ModelManager) Watch(ctx context.Context) error {
	mm.mutex.Lock()
	if mm.isClosed {
		mm.mutex.Unlock()
		return ErrManagerClosed
	}
	if mm.fsnotify != nil {
		mm.mutex.Unlock()
		return ErrAlreadyWatched
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		mm.mutex.Unlock()
		return err
	}
	dirs := make(map[string]struct{})
	for path := range mm.sources {
		dirs[filepath.Dir(path)] = struct{}{}
	}
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			mm.mutex.Unlock()
			w.Close()
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	mm.fsnotify = w
	mm.mutex.Unlock()

	mm.wg.Add(1)
	go mm.start(ctx, w)
	return nil
}

// Close stops the watcher, if any.
func (mm *ModelManager) Close() error {
	mm.mutex.Lock()
	if mm.isClosed {
		mm.mutex.Unlock()
		return nil
	}
	mm.isClosed = true
	w := mm.fsnotify
	mm.mutex.Unlock()

	close(mm.done)
	mm.wg.Wait()
	if w != nil {
		return w.Close()
	}
	return nil
}

func (mm *ModelManager) start(ctx context.Context, w *fsnotify.Watcher) {
	defer mm.wg.Done()
	for {
		select {
		case e, ok := <-w.Events:
			if !ok {
				return
			}
			// Handle create or modify events
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				mm.handleFileEvent(e.Name)
			}
			if e.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				if _, tracked := mm.handleFor(e.Name); tracked {
					core.LogWarn("model file '%s' removed, keeping the last loaded version", e.Name)
				}
			}

		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			core.LogError("%s", err)

		case <-ctx.Done():
			return

		case <-mm.done:
			return
		}
	}
}

func (mm *ModelManager) handleFor(path string) (string, bool) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}
	mm.mutex.RLock()
	defer mm.mutex.RUnlock()
	h, ok := mm.sources[abs]
	return h, ok
}

// Reload a tracked file after it changed. Parse errors keep the previous version.
func (mm *ModelManager) handleFileEvent(path string) {
	handle, ok := mm.handleFor(path)
	if !ok {
		return
	}
	abs, _ := filepath.Abs(path)
	obj, err := mm.parseFile(abs)
	if err != nil {
		core.LogWarn("reloading '%s' failed, keeping the last loaded version: %s", path, err)
		return
	}

	mm.mutex.Lock()
	mm.models[handle] = obj
	mm.mutex.Unlock()

	core.LogInfo("model '%s' reloaded (%d triangles)", path, obj.TriangleCount())
	if mm.onReload != nil {
		mm.onReload(handle)
	}
}

func (mm *ModelManager) parseFile(path string) (*resources.ObjFile, error) {
	if determineResourceType(path) != resources.ResourceTypeModel {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, filepath.Ext(path))
	}
	loader, ok := mm.loaders[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, filepath.Ext(path))
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrModelNotFound, path)
		}
		return nil, err
	}
	defer f.Close()

	obj, err := loader.Load(f, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	if err != nil {
		return nil, err
	}
	if obj.IsEmpty() {
		return nil, fmt.Errorf("%w: %s", ErrEmptyModel, path)
	}
	return obj, nil
}

func determineResourceType(path string) resources.ResourceType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		return resources.ResourceTypeModel
	case ".mtl":
		return resources.ResourceTypeMaterial
	default:
		return resources.ResourceTypeNone
	}
}
