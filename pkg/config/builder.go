package config

// RecipeBuilder provides a fluent interface for building a Recipe.
type RecipeBuilder struct {
	recipe Recipe
}

// NewRecipeBuilder creates a builder starting from Defaults.
func NewRecipeBuilder() *RecipeBuilder {
	return &RecipeBuilder{recipe: Defaults()}
}

// Build returns the final Recipe, applying constraints.
func (b *RecipeBuilder) Build() Recipe {
	r := b.recipe
	r.Steps = append([]Step(nil), b.recipe.Steps...)

	if r.Workers < 1 {
		r.Workers = 1
	}
	if r.QueueSize < 1 {
		r.QueueSize = 1
	}
	if r.Quality < 1 {
		r.Quality = 1
	}
	if r.Quality > 100 {
		r.Quality = 100
	}

	return r
}

// WithInput sets the input file path.
func (b *RecipeBuilder) WithInput(path string) *RecipeBuilder {
	b.recipe.Input = path
	return b
}

// WithOutput sets the output file path.
func (b *RecipeBuilder) WithOutput(path string) *RecipeBuilder {
	b.recipe.Output = path
	return b
}

// Scale appends a scale step to an explicit size. method is a scaler name
// such as "nearest", "bilinear" or "kscale".
func (b *RecipeBuilder) Scale(method string, width, height int) *RecipeBuilder {
	b.recipe.Steps = append(b.recipe.Steps, Step{Op: method, Width: width, Height: height})
	return b
}

// ScaleBy appends a scale step by factor k.
func (b *RecipeBuilder) ScaleBy(method string, k float64) *RecipeBuilder {
	b.recipe.Steps = append(b.recipe.Steps, Step{Op: method, Factor: k})
	return b
}

// Rotate appends a rotation step.
func (b *RecipeBuilder) Rotate(angleDegrees float64) *RecipeBuilder {
	b.recipe.Steps = append(b.recipe.Steps, Step{Op: "rotate", Angle: angleDegrees})
	return b
}

// Median appends a median filter step.
func (b *RecipeBuilder) Median() *RecipeBuilder {
	b.recipe.Steps = append(b.recipe.Steps, Step{Op: "median"})
	return b
}

// Convolve appends a convolution step. A nil kernel means the box kernel.
func (b *RecipeBuilder) Convolve(kernel []float64) *RecipeBuilder {
	b.recipe.Steps = append(b.recipe.Steps, Step{Op: "convolve", Kernel: kernel})
	return b
}

// WithQuality sets the JPEG output quality (1-100).
func (b *RecipeBuilder) WithQuality(quality int) *RecipeBuilder {
	b.recipe.Quality = quality
	return b
}

// WithAutoOrient toggles applying EXIF orientation on decode.
func (b *RecipeBuilder) WithAutoOrient(enabled bool) *RecipeBuilder {
	b.recipe.AutoOrient = enabled
	return b
}

// WithWorkers sets the number of files processed concurrently by batch runs.
// Values below 1 will be forced to 1.
func (b *RecipeBuilder) WithWorkers(workers int) *RecipeBuilder {
	b.recipe.Workers = workers
	return b
}

// WithQueueSize sets the job queue capacity of each worker.
func (b *RecipeBuilder) WithQueueSize(size int) *RecipeBuilder {
	b.recipe.QueueSize = size
	return b
}

// WithCompare writes a before/after sheet to path.
func (b *RecipeBuilder) WithCompare(path string) *RecipeBuilder {
	b.recipe.Compare.Path = path
	return b
}

// WithSummary writes a Markdown run summary to path.
func (b *RecipeBuilder) WithSummary(path string) *RecipeBuilder {
	b.recipe.Summary = path
	return b
}

// WithDebug saves every intermediate step under dir.
func (b *RecipeBuilder) WithDebug(dir string) *RecipeBuilder {
	b.recipe.Debug = true
	if dir != "" {
		b.recipe.DebugDir = dir
	}
	return b
}
