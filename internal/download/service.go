package download

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lrstanley/go-ytdlp"
	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"

	"github.com/ytget/yt-jukebox/internal/model"
	"github.com/ytget/yt-jukebox/internal/platform"
)

// Retry and progress settings
const (
	DefaultMaxRetries   = 1
	DefaultRetryBackoff = 2 * time.Second
	ProgressInterval    = 500 * time.Millisecond
	TaskIDPrefix        = "fetch-"
)

// Runner executes one download attempt and returns the written files.
type Runner func(ctx context.Context, task *model.DownloadTask, progress func(ytdlp.ProgressUpdate)) ([]string, error)

// Service handles download operations
type Service struct {
	tasks       map[string]*model.DownloadTask
	cancels     map[string]context.CancelFunc
	tasksMutex  sync.RWMutex
	maxParallel int
	activeCount int

	lib     platform.Library
	ffmpeg  string
	run     Runner
	retries uint64
	backoff time.Duration

	onUpdate func(model.DownloadTask) // callback for UI updates, gets a snapshot
	log      zerolog.Logger
}

// NewService creates a new download service writing into lib
func NewService(lib platform.Library, maxParallel int, log zerolog.Logger) *Service {
	s := &Service{
		tasks:       make(map[string]*model.DownloadTask),
		cancels:     make(map[string]context.CancelFunc),
		maxParallel: max(1, maxParallel),
		lib:         lib,
		retries:     DefaultMaxRetries,
		backoff:     DefaultRetryBackoff,
		log:         log.With().Str("component", "download").Logger(),
	}
	s.run = s.runYTDLP
	return s
}

// SetUpdateCallback sets the callback function for task updates. The
// callback receives a copy taken under the task lock.
func (s *Service) SetUpdateCallback(callback func(model.DownloadTask)) {
	s.onUpdate = callback
}

// SetFFmpegLocation points yt-dlp at a specific ffmpeg binary or directory
func (s *Service) SetFFmpegLocation(path string) {
	s.ffmpeg = path
}

// SetRunner replaces the yt-dlp runner
func (s *Service) SetRunner(run Runner) {
	s.run = run
}

// SetRetryPolicy sets how many times a failed download is retried
func (s *Service) SetRetryPolicy(retries uint64, backoff time.Duration) {
	s.retries = retries
	s.backoff = backoff
}

// AddTask queues a download and starts it when there is capacity
func (s *Service) AddTask(url string, preset model.FetchPreset) (*model.DownloadTask, error) {
	task, err := s.newTask(url, preset)
	if err != nil {
		return nil, err
	}

	s.tasksMutex.Lock()
	start := s.activeCount < s.maxParallel
	if start {
		s.activeCount++
	}
	s.tasksMutex.Unlock()

	if start {
		go s.startTask(task)
	}
	return task, nil
}

// Fetch runs a download in the calling goroutine and returns a snapshot of
// the finished task. The parallelism limit does not apply.
func (s *Service) Fetch(ctx context.Context, url string, preset model.FetchPreset) (model.DownloadTask, error) {
	task, err := s.newTask(url, preset)
	if err != nil {
		return model.DownloadTask{}, err
	}
	s.execute(ctx, task)

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

func (s *Service) newTask(url string, preset model.FetchPreset) (*model.DownloadTask, error) {
	if !preset.Valid() {
		return nil, fmt.Errorf("unknown preset %q", preset)
	}
	if strings.TrimSpace(url) == "" {
		return nil, fmt.Errorf("empty URL")
	}

	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()

	for _, task := range s.tasks {
		if task.URL == url && task.Preset == preset && !task.Status.IsFinished() {
			return nil, fmt.Errorf("task already exists for URL: %s", url)
		}
	}

	task := &model.DownloadTask{
		ID:        generateTaskID(),
		URL:       url,
		Preset:    preset,
		Status:    model.TaskStatusPending,
		ETASec:    -1,
		StartedAt: time.Now(),
	}
	s.tasks[task.ID] = task
	return task, nil
}

// GetTask returns a snapshot of a task by ID
func (s *Service) GetTask(id string) (model.DownloadTask, bool) {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	task, exists := s.tasks[id]
	if !exists {
		return model.DownloadTask{}, false
	}
	return *task, true
}

// GetAllTasks returns snapshots of all tasks, oldest first
func (s *Service) GetAllTasks() []model.DownloadTask {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()

	tasks := make([]model.DownloadTask, 0, len(s.tasks))
	for _, task := range s.tasks {
		tasks = append(tasks, *task)
	}
	slices.SortFunc(tasks, func(a, b model.DownloadTask) int { return strings.Compare(a.ID, b.ID) })
	return tasks
}

// StopTask stops a running task
func (s *Service) StopTask(id string) error {
	s.tasksMutex.Lock()

	task, exists := s.tasks[id]
	if !exists {
		s.tasksMutex.Unlock()
		return fmt.Errorf("task not found: %s", id)
	}

	if task.Status == model.TaskStatusPending {
		task.Status = model.TaskStatusStopped
		task.FinishedAt = time.Now()
		s.tasksMutex.Unlock()
		s.notifyUpdate(task)
		return nil
	}

	if !task.Status.IsActive() {
		s.tasksMutex.Unlock()
		return fmt.Errorf("task is not active: %s", task.Status)
	}

	task.Status = model.TaskStatusStopping
	cancel := s.cancels[id]
	s.tasksMutex.Unlock()

	s.notifyUpdate(task)
	if cancel != nil {
		cancel()
	}
	return nil
}

// startTask runs a queued task and then pulls the next pending one.
// activeCount was already incremented for it.
func (s *Service) startTask(task *model.DownloadTask) {
	defer func() {
		s.tasksMutex.Lock()
		s.activeCount--
		s.tasksMutex.Unlock()

		s.startNextPendingTask()
	}()

	s.execute(context.Background(), task)
}

// execute drives one task from Starting to a finished status
func (s *Service) execute(parent context.Context, task *model.DownloadTask) {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	s.tasksMutex.Lock()
	if task.Status != model.TaskStatusPending {
		s.tasksMutex.Unlock()
		return
	}
	task.Status = model.TaskStatusStarting
	s.cancels[task.ID] = cancel
	s.tasksMutex.Unlock()
	s.notifyUpdate(task)

	s.setStatus(task, model.TaskStatusRunning)

	files, err := s.downloadWithRetry(ctx, task)

	s.tasksMutex.Lock()
	delete(s.cancels, task.ID)
	switch {
	case err != nil && ctx.Err() != nil:
		task.Status = model.TaskStatusStopped
	case err != nil:
		task.Status = model.TaskStatusError
		task.LastError = err.Error()
	default:
		task.Status = model.TaskStatusCompleted
		task.Progress = 1.0
		task.Percent = 100
		if len(files) > 0 {
			task.Files = len(files)
			task.OutputPath = files[len(files)-1]
		}
	}
	task.FinishedAt = time.Now()
	s.tasksMutex.Unlock()

	s.log.Info().
		Str("task", task.ID).
		Str("preset", string(task.Preset)).
		Str("status", task.Status.String()).
		Int("files", task.Files).
		Msg("download finished")
	s.notifyUpdate(task)
}

// downloadWithRetry attempts the download, retrying failed attempts
func (s *Service) downloadWithRetry(ctx context.Context, task *model.DownloadTask) ([]string, error) {
	var files []string
	attempt := 0
	backoff := retry.WithMaxRetries(s.retries, retry.NewConstant(s.backoff))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		if attempt > 1 {
			s.log.Warn().Str("task", task.ID).Int("attempt", attempt).Msg("retrying download")
		}

		out, err := s.run(ctx, task, func(update ytdlp.ProgressUpdate) {
			s.updateTaskProgress(task, &update)
		})
		if err == nil {
			files = out
			return nil
		}

		s.log.Error().Err(err).Str("task", task.ID).Int("attempt", attempt).Msg("download attempt failed")
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return retry.RetryableError(err)
	})
	return files, err
}

// runYTDLP is the default Runner
func (s *Service) runYTDLP(ctx context.Context, task *model.DownloadTask, progress func(ytdlp.ProgressUpdate)) ([]string, error) {
	dl, err := BuildCommand(s.lib, task.Preset, s.ffmpeg)
	if err != nil {
		return nil, err
	}
	dl.ProgressFunc(ProgressInterval, progress)

	result, err := dl.Run(ctx, task.URL)
	if err != nil {
		return nil, err
	}

	info, err := result.GetExtractedInfo()
	if err != nil {
		s.log.Debug().Err(err).Msg("no extracted info")
		return nil, nil
	}
	var files []string
	for _, i := range info {
		if i.Filename != nil {
			files = append(files, *i.Filename)
		}
	}
	return files, nil
}

// updateTaskProgress updates task progress from yt-dlp info
func (s *Service) updateTaskProgress(task *model.DownloadTask, update *ytdlp.ProgressUpdate) {
	s.tasksMutex.Lock()

	if update.TotalBytes > 0 {
		percent := float64(update.DownloadedBytes) / float64(update.TotalBytes) * 100
		task.Percent = int(percent)
		task.Progress = percent / 100.0
	}

	if !update.Started.IsZero() {
		elapsed := time.Since(update.Started)
		if elapsed.Seconds() > 0 {
			bytesPerSecond := float64(update.DownloadedBytes) / elapsed.Seconds()
			task.Speed = fmt.Sprintf("%.1fMB/s", bytesPerSecond/1024/1024)
		}
	}

	if eta := update.ETA(); eta > 0 {
		task.ETASec = int(eta.Seconds())
	}

	// A new title means the previous playlist item finished.
	if update.Info != nil && update.Info.Title != nil && *update.Info.Title != "" && *update.Info.Title != task.Title {
		if task.Title != "" {
			task.Files++
		}
		task.Title = *update.Info.Title
	}
	s.tasksMutex.Unlock()

	s.notifyUpdate(task)
}

func (s *Service) setStatus(task *model.DownloadTask, status model.TaskStatus) {
	s.tasksMutex.Lock()
	task.Status = status
	s.tasksMutex.Unlock()
	s.notifyUpdate(task)
}

// startNextPendingTask starts the oldest pending task if there is capacity
func (s *Service) startNextPendingTask() {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()

	if s.activeCount >= s.maxParallel {
		return
	}

	var next *model.DownloadTask
	for _, task := range s.tasks {
		if task.Status == model.TaskStatusPending && (next == nil || task.ID < next.ID) {
			next = task
		}
	}
	if next != nil {
		s.activeCount++
		go s.startTask(next)
	}
}

// notifyUpdate calls the update callback with a snapshot of task. Callers
// must not hold tasksMutex.
func (s *Service) notifyUpdate(task *model.DownloadTask) {
	if s.onUpdate == nil {
		return
	}
	s.tasksMutex.RLock()
	snapshot := *task
	s.tasksMutex.RUnlock()
	s.onUpdate(snapshot)
}

// generateTaskID generates a time-ordered task ID using UUID v7
func generateTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf(TaskIDPrefix+"%d", time.Now().UnixNano())
	}
	return TaskIDPrefix + id.String()
}
