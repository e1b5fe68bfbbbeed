package utils

import (
	"sync"
)

// ParallelTask represents a unit of work run by RunParallelTasks
type ParallelTask[T any] func() (T, error)

// RunParallelTasks runs every task, with at most limit in flight, and waits for all of
// them to settle. results[i] and errs[i] belong to tasks[i]. A limit <= 0 means len(tasks).
func RunParallelTasks[T any](tasks []ParallelTask[T], limit int) ([]T, []error) {
	results := make([]T, len(tasks))
	errs := make([]error, len(tasks))
	if len(tasks) == 0 {
		return results, errs
	}
	if limit <= 0 || limit > len(tasks) {
		limit = len(tasks)
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, limit)

	wg.Add(len(tasks))
	for i, task := range tasks {
		sem <- struct{}{}
		go func(index int, t ParallelTask[T]) {
			defer func() {
				<-sem
				wg.Done()
			}()
			results[index], errs[index] = t()
		}(i, task)
	}

	wg.Wait()
	return results, errs
}
