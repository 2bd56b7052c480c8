package convert

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ytget/yt-jukebox/internal/model"
)

// ffmpeg settings
const (
	// mp4-compatible streams are copied, the rest re-encoded
	CopyCodec   = "copy"
	VideoCodec  = "libx264"
	VideoPreset = "medium"
	VideoCRF    = "23"

	AudioCodec   = "aac"
	AudioBitrate = "192k"

	FastStartFlag = "+faststart"

	ConvertedSuffix     = "-convert"
	ProgressPipeTarget  = "pipe:2"
	ProgressTimePrefix  = "out_time_us="
	TaskIDPrefix        = "convert-"
	OutputExtensionMP4  = ".mp4"
	DefaultFFmpegBinary = "ffmpeg"
)

// SourceExts are the containers ConvertAll picks up.
var SourceExts = []string{".webm", ".mkv"}

// Service handles video conversion operations
type Service struct {
	tasks      map[string]*model.ConversionTask
	cancels    map[string]context.CancelFunc
	tasksMutex sync.RWMutex
	onUpdate   func(model.ConversionTask) // callback for UI updates, gets a snapshot

	ffmpeg     string
	prober     DurationProber
	reencode   bool
	keepSource bool
	log        zerolog.Logger
}

// NewService creates a new conversion service. ffmpeg may be empty to use
// the binary on PATH.
func NewService(ffmpeg string, prober DurationProber, log zerolog.Logger) *Service {
	if ffmpeg == "" {
		ffmpeg = DefaultFFmpegBinary
	}
	return &Service{
		tasks:   make(map[string]*model.ConversionTask),
		cancels: make(map[string]context.CancelFunc),
		ffmpeg:  ffmpeg,
		prober:  prober,
		log:     log.With().Str("component", "convert").Logger(),
	}
}

// SetUpdateCallback sets the callback function for task updates. The
// callback receives a copy taken under the task lock.
func (s *Service) SetUpdateCallback(callback func(model.ConversionTask)) {
	s.onUpdate = callback
}

// SetReencode switches from stream copy to a full libx264/aac encode.
func (s *Service) SetReencode(reencode bool) {
	s.reencode = reencode
}

// SetKeepSource keeps the original file after ConvertAll succeeds.
func (s *Service) SetKeepSource(keep bool) {
	s.keepSource = keep
}

// Convert converts a video file, waits for ffmpeg to finish and returns a
// snapshot of the finished task
func (s *Service) Convert(ctx context.Context, inputPath string) (model.ConversionTask, error) {
	task, err := s.newTask(inputPath)
	if err != nil {
		return model.ConversionTask{}, err
	}
	s.run(ctx, task)

	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	switch task.Status {
	case model.TaskStatusCompleted:
		return *task, nil
	case model.TaskStatusStopped:
		return *task, context.Canceled
	default:
		return *task, errors.New(task.LastError)
	}
}

func (s *Service) newTask(inputPath string) (*model.ConversionTask, error) {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()

	for _, task := range s.tasks {
		if task.InputPath == inputPath && !task.Status.IsFinished() {
			return nil, fmt.Errorf("conversion already in progress for file: %s", inputPath)
		}
	}

	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("input file does not exist: %s", inputPath)
	}

	task := &model.ConversionTask{
		ID:         generateTaskID(),
		InputPath:  inputPath,
		OutputPath: generateOutputPath(inputPath),
		Status:     model.TaskStatusPending,
		StartedAt:  time.Now(),
	}
	s.tasks[task.ID] = task
	return task, nil
}

// StopConversion stops a running conversion task
func (s *Service) StopConversion(taskID string) error {
	s.tasksMutex.Lock()

	task, exists := s.tasks[taskID]
	if !exists {
		s.tasksMutex.Unlock()
		return fmt.Errorf("conversion task not found: %s", taskID)
	}
	if !task.Status.IsActive() && task.Status != model.TaskStatusPending {
		s.tasksMutex.Unlock()
		return fmt.Errorf("conversion task is not active: %s", task.Status)
	}

	task.Status = model.TaskStatusStopping
	cancel := s.cancels[taskID]
	s.tasksMutex.Unlock()

	s.notifyUpdate(task)
	if cancel != nil {
		cancel()
	}
	return nil
}

// GetAllTasks returns snapshots of all conversion tasks, oldest first
func (s *Service) GetAllTasks() []model.ConversionTask {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()

	tasks := make([]model.ConversionTask, 0, len(s.tasks))
	for _, task := range s.tasks {
		tasks = append(tasks, *task)
	}
	slices.SortFunc(tasks, func(a, b model.ConversionTask) int { return strings.Compare(a.ID, b.ID) })
	return tasks
}

// run performs the actual conversion
func (s *Service) run(parent context.Context, task *model.ConversionTask) {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	s.tasksMutex.Lock()
	if task.Status != model.TaskStatusPending {
		s.tasksMutex.Unlock()
		s.finish(task, context.Canceled)
		return
	}
	task.Status = model.TaskStatusStarting
	s.cancels[task.ID] = cancel
	s.tasksMutex.Unlock()
	s.notifyUpdate(task)

	defer func() {
		s.tasksMutex.Lock()
		delete(s.cancels, task.ID)
		s.tasksMutex.Unlock()
	}()

	// A missing duration only costs the progress bar.
	var duration time.Duration
	if s.prober != nil {
		d, err := s.prober.Probe(ctx, task.InputPath)
		if err != nil {
			s.log.Warn().Err(err).Str("file", task.InputPath).Msg("failed to get video duration")
		}
		duration = d
	}

	s.tasksMutex.Lock()
	task.Status = model.TaskStatusRunning
	s.tasksMutex.Unlock()
	s.notifyUpdate(task)

	args := BuildFFmpegArgs(task.InputPath, task.OutputPath, s.reencode)
	cmd := exec.CommandContext(ctx, s.ffmpeg, args...)

	stderr, err := cmd.StderrPipe()
	if err != nil {
		s.finish(task, fmt.Errorf("failed to create stderr pipe: %w", err))
		return
	}
	if err := cmd.Start(); err != nil {
		s.finish(task, fmt.Errorf("failed to start ffmpeg: %w", err))
		return
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.monitorProgress(stderr, task, duration)
	}()
	<-done
	err = cmd.Wait()

	if ctx.Err() != nil {
		err = context.Canceled
	}
	s.finish(task, err)
}

// finish records the outcome. Partial output is removed on failure.
func (s *Service) finish(task *model.ConversionTask, err error) {
	s.tasksMutex.Lock()
	switch {
	case errors.Is(err, context.Canceled):
		task.Status = model.TaskStatusStopped
	case err != nil:
		task.Status = model.TaskStatusError
		task.LastError = err.Error()
	default:
		task.Status = model.TaskStatusCompleted
		task.Progress = 1.0
		task.Percent = 100
	}
	task.FinishedAt = time.Now()
	s.tasksMutex.Unlock()

	if err != nil {
		if rmErr := os.Remove(task.OutputPath); rmErr != nil && !os.IsNotExist(rmErr) {
			s.log.Warn().Err(rmErr).Str("file", task.OutputPath).Msg("failed to remove partial output")
		}
	}

	s.log.Info().
		Str("task", task.ID).
		Str("file", filepath.Base(task.InputPath)).
		Str("status", task.Status.String()).
		Msg("conversion finished")
	s.notifyUpdate(task)
}

// BuildFFmpegArgs builds the ffmpeg command arguments
func BuildFFmpegArgs(inputPath, outputPath string, reencode bool) []string {
	args := []string{
		"-y",            // Overwrite output file
		"-i", inputPath, // Input file
	}
	if reencode {
		args = append(args,
			"-c:v", VideoCodec,
			"-preset", VideoPreset,
			"-crf", VideoCRF,
			"-c:a", AudioCodec,
			"-b:a", AudioBitrate,
		)
	} else {
		// webm audio is opus, which mp4 players handle poorly
		args = append(args,
			"-c:v", CopyCodec,
			"-c:a", AudioCodec,
			"-b:a", AudioBitrate,
		)
	}
	return append(args,
		"-movflags", FastStartFlag,
		"-progress", ProgressPipeTarget,
		"-nostats",
		outputPath,
	)
}

// monitorProgress monitors ffmpeg progress output
func (s *Service) monitorProgress(stderr io.ReadCloser, task *model.ConversionTask, total time.Duration) {
	defer stderr.Close()
	scanner := bufio.NewScanner(stderr)

	for scanner.Scan() {
		progress, ok := ParseProgressLine(scanner.Text(), total)
		if !ok {
			continue
		}

		s.tasksMutex.Lock()
		task.Progress = progress
		task.Percent = int(progress * 100)
		s.tasksMutex.Unlock()

		s.notifyUpdate(task)
	}
}

// ParseProgressLine reads an "out_time_us=" line of ffmpeg -progress output
// and returns the completed fraction of total.
func ParseProgressLine(line string, total time.Duration) (float64, bool) {
	line = strings.TrimSpace(line)
	value, found := strings.CutPrefix(line, ProgressTimePrefix)
	if !found || total <= 0 {
		return 0, false
	}
	us, err := strconv.ParseInt(value, 10, 64)
	if err != nil || us < 0 {
		return 0, false
	}
	return min(float64(time.Duration(us)*time.Microsecond)/float64(total), 1.0), true
}

// Report lists the outcome of ConvertAll. Stopped holds files whose
// conversion was stopped on its own while the batch carried on.
type Report struct {
	Converted []string
	Skipped   []string
	Stopped   []string
	Failed    map[string]error
}

// Err joins the per-file failures.
func (r *Report) Err() error {
	var errs []error
	for _, name := range slices.Sorted(maps.Keys(r.Failed)) {
		errs = append(errs, fmt.Errorf("%s: %w", name, r.Failed[name]))
	}
	return errors.Join(errs...)
}

// ConvertAll converts every .webm and .mkv in videoDir to an mp4 with the
// same stem. Files whose mp4 already exists are skipped. A failure does not
// stop the remaining files.
func (s *Service) ConvertAll(ctx context.Context, videoDir string) (*Report, error) {
	entries, err := os.ReadDir(videoDir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", videoDir, err)
	}

	report := &Report{Failed: make(map[string]error)}
	for _, e := range entries {
		if e.IsDir() || !slices.Contains(SourceExts, strings.ToLower(filepath.Ext(e.Name()))) {
			continue
		}
		if ctx.Err() != nil {
			return report, ctx.Err()
		}

		input := filepath.Join(videoDir, e.Name())
		if _, err := os.Stat(generateOutputPath(input)); err == nil {
			report.Skipped = append(report.Skipped, e.Name())
			continue
		}

		task, err := s.Convert(ctx, input)
		switch {
		case errors.Is(err, context.Canceled) && ctx.Err() == nil:
			report.Stopped = append(report.Stopped, e.Name())
			continue
		case err != nil:
			report.Failed[e.Name()] = err
			continue
		}
		report.Converted = append(report.Converted, filepath.Base(task.OutputPath))

		if !s.keepSource {
			if err := os.Remove(input); err != nil {
				s.log.Warn().Err(err).Str("file", input).Msg("failed to remove converted source")
			}
		}
	}
	return report, nil
}

// notifyUpdate calls the update callback with a snapshot of task. Callers
// must not hold tasksMutex.
func (s *Service) notifyUpdate(task *model.ConversionTask) {
	if s.onUpdate == nil {
		return
	}
	s.tasksMutex.RLock()
	snapshot := *task
	s.tasksMutex.RUnlock()
	s.onUpdate(snapshot)
}

// generateOutputPath returns the mp4 path for inputPath. An mp4 input gets a
// suffix so it is not overwritten in place.
func generateOutputPath(inputPath string) string {
	ext := filepath.Ext(inputPath)
	baseName := strings.TrimSuffix(inputPath, ext)
	if strings.EqualFold(ext, OutputExtensionMP4) {
		return baseName + ConvertedSuffix + OutputExtensionMP4
	}
	return baseName + OutputExtensionMP4
}

// generateTaskID generates a time-ordered task ID using UUID v7
func generateTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf(TaskIDPrefix+"%d", time.Now().UnixNano())
	}
	return TaskIDPrefix + id.String()
}
