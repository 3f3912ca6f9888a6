// Package pipeline orchestrates the sketch-to-excalidraw conversion.
//
// One Process call runs the full pipeline for one image: binary stroke
// mask, contour extraction, shape classification, OCR, diagram assembly,
// and document packaging. Data flows strictly forward; each stage consumes
// the complete output of its predecessor, and no stage reads back from a
// downstream stage.
//
// Batch runs Process over a directory with a pool of workers. Images are
// fully independent of each other, so the only coordination is the work
// queue: a failed image is logged and skipped, and the batch continues.
package pipeline

import (
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/inkshape/sketch-to-excalidraw/internal/config"
	"github.com/inkshape/sketch-to-excalidraw/internal/contour"
	"github.com/inkshape/sketch-to-excalidraw/internal/detection"
	"github.com/inkshape/sketch-to-excalidraw/internal/excalidraw"
	"github.com/inkshape/sketch-to-excalidraw/internal/imaging"
	"github.com/inkshape/sketch-to-excalidraw/internal/ocr"
)

// Pipeline converts sketch images into Excalidraw documents.
type Pipeline struct {
	cfg        config.Config
	cache      *imaging.ImageCache
	recognizer ocr.Recognizer
}

// New creates a pipeline with the given configuration. A nil recognizer
// defaults to the Tesseract-backed one using the configured language.
func New(cfg config.Config, recognizer ocr.Recognizer) *Pipeline {
	if recognizer == nil {
		recognizer = ocr.NewTesseractRecognizer(cfg.OCRLanguage)
	}
	return &Pipeline{
		cfg:        cfg,
		cache:      imaging.NewImageCache(),
		recognizer: recognizer,
	}
}

// Result summarizes one converted image.
type Result struct {
	// InputPath is the source image path.
	InputPath string `json:"input_path"`

	// JSONPath and MarkdownPath are the written artifacts.
	JSONPath     string `json:"json_path"`
	MarkdownPath string `json:"markdown_path"`

	// ShapeCount is the number of classified shapes.
	ShapeCount int `json:"shape_count"`

	// TextCount is the number of recognized text spans.
	TextCount int `json:"text_count"`

	// ElementCount is the number of elements in the packaged document.
	ElementCount int `json:"element_count"`
}

// Process converts one image and writes the artifacts into outputDir.
//
// Artifacts are excalidraw.json (the envelope) and <name>.excalidraw.md
// (the Obsidian container), plus numbered debug images when enabled. Both
// artifacts are written atomically, so a failed run never leaves a
// partially written document behind.
func (p *Pipeline) Process(inputPath, outputDir string) (*Result, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	info, err := imaging.LoadImageInfo(p.cache, inputPath)
	if err != nil {
		return nil, err
	}
	defer p.cache.Evict(inputPath)
	log.Printf("loaded %s: %dx%d %s, %d bytes",
		inputPath, info.Width, info.Height, info.Format, info.FileSizeBytes)

	// Cache hit: LoadImageInfo already decoded the image.
	img, err := p.cache.Load(inputPath)
	if err != nil {
		return nil, err
	}

	if p.cfg.DebugImages {
		if err := imaging.SaveDebugImage(imaging.Grayscale(img), filepath.Join(outputDir, "1-gray.png")); err != nil {
			log.Printf("debug image: %v", err)
		}
	}

	mask := p.buildMask(img)

	if p.cfg.DebugImages {
		if err := imaging.SaveDebugImage(mask.ToGray(), filepath.Join(outputDir, "2-threshold.png")); err != nil {
			log.Printf("debug image: %v", err)
		}
	}

	boundaries := contour.Trace(mask, contour.TraceOptions{MinArea: p.cfg.NoiseFloorArea})

	registry := detection.ClassifyAll(boundaries, detection.ClassifyOptions{
		EpsilonRatio:        p.cfg.ApproxEpsilonRatio,
		SquareAspectMin:     p.cfg.SquareAspectMin,
		SquareAspectMax:     p.cfg.SquareAspectMax,
		CircleAreaTolerance: p.cfg.CircleAreaTolerance,
	})

	for i, shape := range registry.Shapes() {
		log.Printf("contour %d: %s at [x=%d, y=%d, w=%d, h=%d] with %d vertices",
			i, shape.Kind, shape.X, shape.Y, shape.Width, shape.Height, shape.VertexCount)
	}

	spans, err := p.recognizer.Recognize(inputPath)
	if err != nil {
		// A document is never assembled from partial input: a failed
		// recognizer is a terminal failure for this image.
		return nil, fmt.Errorf("text recognition failed: %w", err)
	}
	for _, span := range spans {
		log.Printf("recognized %q with confidence %.2f", span.Text, span.Confidence)
	}

	elements := excalidraw.Assemble(registry.Shapes(), spans, excalidraw.AssembleOptions{
		MinFontSize: p.cfg.MinFontSize,
		MaxFontSize: p.cfg.MaxFontSize,
	})
	doc := excalidraw.NewDocument(elements)

	data, err := doc.MarshalIndent()
	if err != nil {
		return nil, err
	}
	jsonPath := filepath.Join(outputDir, "excalidraw.json")
	if err := writeFileAtomic(jsonPath, data); err != nil {
		return nil, err
	}

	markdown, err := excalidraw.Markdown(doc)
	if err != nil {
		return nil, err
	}
	mdPath := filepath.Join(outputDir, baseName(inputPath)+".excalidraw.md")
	if err := writeFileAtomic(mdPath, []byte(markdown)); err != nil {
		return nil, err
	}

	return &Result{
		InputPath:    inputPath,
		JSONPath:     jsonPath,
		MarkdownPath: mdPath,
		ShapeCount:   registry.Len(),
		TextCount:    len(spans),
		ElementCount: len(elements),
	}, nil
}

// buildMask produces the binary stroke mask using the configured source.
func (p *Pipeline) buildMask(img image.Image) *imaging.Mask {
	switch p.cfg.MaskSource {
	case config.MaskSourceEdge:
		return imaging.EdgeMask(img, p.cfg.EdgeThresholdLow, p.cfg.EdgeThresholdHigh)

	case config.MaskSourceInk:
		return imaging.InkMask(img, imaging.InkMaskOptions{
			HueMin:        p.cfg.InkHueMin,
			HueMax:        p.cfg.InkHueMax,
			MinSaturation: p.cfg.InkMinSaturation,
			MaxBlackValue: p.cfg.InkMaxBlackValue,
		})

	default:
		return imaging.Binarize(img, imaging.BinarizeOptions{
			MedianBlurRadius: p.cfg.MedianBlurRadius,
			BlockSize:        p.cfg.AdaptiveBlockSize,
			C:                p.cfg.AdaptiveC,
			MorphRadius:      p.cfg.MorphRadius,
		})
	}
}

// BatchResult summarizes a directory run.
type BatchResult struct {
	Processed int       `json:"processed"`
	Failed    int       `json:"failed"`
	Results   []*Result `json:"results"`
}

// imageExtensions lists the file extensions batch mode picks up.
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".bmp":  true,
}

// Batch converts every image in inputDir, writing one output subdirectory
// per image under outputDir.
//
// Images are processed concurrently, one image per worker. A failing image
// does not abort the run; it is counted in Failed and the batch moves on.
// Results are returned in directory order regardless of completion order.
func (p *Pipeline) Batch(inputDir, outputDir string) (*BatchResult, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	var inputs []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if imageExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			inputs = append(inputs, filepath.Join(inputDir, entry.Name()))
		}
	}

	workers := p.cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(inputs) {
		workers = len(inputs)
	}

	results := make([]*Result, len(inputs))
	errs := make([]error, len(inputs))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				input := inputs[i]
				jobID := uuid.NewString()[:8]
				log.Printf("[%s] processing %s", jobID, input)

				out := filepath.Join(outputDir, baseName(input))
				res, err := p.Process(input, out)
				if err != nil {
					log.Printf("[%s] failed: %v", jobID, err)
					errs[i] = err
					continue
				}
				log.Printf("[%s] wrote %s (%d elements)", jobID, res.MarkdownPath, res.ElementCount)
				results[i] = res
			}
		}()
	}
	for i := range inputs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	batch := &BatchResult{}
	for i := range inputs {
		if errs[i] != nil {
			batch.Failed++
			continue
		}
		batch.Processed++
		batch.Results = append(batch.Results, results[i])
	}
	return batch, nil
}

// baseName returns the file name without directory or extension.
func baseName(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// writeFileAtomic writes data to a temporary file in the target directory
// and renames it into place.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename %s: %w", path, err)
	}
	return nil
}
