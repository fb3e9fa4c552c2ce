// Package tasks orchestrates bulk playlist operations with real-time progress reporting.
//
// [ExportEngine.BulkExport] writes every playlist in the workspace to disk
// using a bounded worker pool. The snapshot is fetched once from the backend;
// the workers only format and write files, so a slow disk never holds up the
// fetch. Partial failures are collected per playlist rather than aborting
// the run, and a manifest summarizing the export is written at the end.
//
// Progress updates flow through a non-blocking channel so a consumer that
// stops reading cannot stall an export.
package tasks
