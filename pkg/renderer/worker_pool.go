package renderer

import (
	"runtime"
	"sync"
)

// TileTask represents a tile rendering task for the worker pool
type TileTask struct {
	Tile    Tile
	Kernel  *Kernel // Frame kernel shared by all tasks of the frame
	Surface Surface // Shared output; tiles write disjoint pixels
	TaskID  int
}

// TileResult contains the result from rendering a tile
type TileResult struct {
	TaskID int
	Stats  FrameStats
}

// WorkerPool manages parallel tile rendering
type WorkerPool struct {
	taskQueue   chan TileTask
	resultQueue chan TileResult
	numWorkers  int
	wg          sync.WaitGroup
	started     bool
}

// NewWorkerPool creates a worker pool sized for taskCapacity queued tiles.
// numWorkers <= 0 uses one worker per CPU.
func NewWorkerPool(numWorkers, taskCapacity int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	return &WorkerPool{
		taskQueue:   make(chan TileTask, taskCapacity),
		resultQueue: make(chan TileResult, taskCapacity),
		numWorkers:  numWorkers,
	}
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	if wp.started {
		return
	}
	wp.started = true
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.run()
	}
}

// Stop gracefully shuts down all workers
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue) // No more tasks
	wp.wg.Wait()        // Wait for workers to finish
	close(wp.resultQueue)
}

// SubmitTask submits a tile task to the worker pool
func (wp *WorkerPool) SubmitTask(task TileTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed tile result
func (wp *WorkerPool) GetResult() (TileResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// NumWorkers returns the number of workers in the pool
func (wp *WorkerPool) NumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (wp *WorkerPool) run() {
	defer wp.wg.Done()

	for task := range wp.taskQueue {
		stats := renderTile(task.Kernel, task.Tile, task.Surface)
		wp.resultQueue <- TileResult{TaskID: task.TaskID, Stats: stats}
	}
}
