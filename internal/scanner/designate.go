package scanner

import (
	"path/filepath"

	"cuesplit/internal/splitplan"
)

// Jobs converts flagged albums into planning jobs. Every .cue file becomes a
// standalone job rooted at its own directory; an embedded sheet becomes a job
// only when its directory has no .cue file.
func Jobs(albums []Album) []splitplan.Job {
	var jobs []splitplan.Job
	for _, album := range albums {
		cueDirs := make(map[string]struct{}, len(album.CueFiles))
		for _, cue := range album.CueFiles {
			dir := filepath.Dir(cue)
			cueDirs[dir] = struct{}{}
			jobs = append(jobs, splitplan.Job{
				Kind:    splitplan.JobStandalone,
				Root:    dir,
				CuePath: cue,
			})
		}
		for _, embedded := range album.Embedded {
			if _, ok := cueDirs[filepath.Dir(embedded.Path)]; ok {
				continue
			}
			jobs = append(jobs, splitplan.Job{
				Kind:      splitplan.JobEmbedded,
				AudioPath: embedded.Path,
				CueText:   embedded.Sheet,
			})
		}
	}
	return jobs
}
