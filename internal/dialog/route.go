package dialog

import "nlu-router/internal/model"

// BestRouteResult picks the highest scoring route. On equal scores the route type
// decides (active dialog, then stack action, then global action). Stack actions
// owned by a deeper frame win ties, and global actions from the library nearest
// the top of the stack win ties.
func BestRouteResult(routes []RouteResult, stack []model.DialogFrame, rootLibrary string) (RouteResult, bool) {
	bestLibrary := rootLibrary
	for _, frame := range stack {
		lib := libraryOf(frame.ID)
		for _, r := range routes {
			if r.LibraryName == lib {
				bestLibrary = lib
				break
			}
		}
	}

	var (
		best  RouteResult
		found bool
	)
	for _, r := range routes {
		if r.Score <= 0 {
			continue
		}

		switch {
		case !found || r.Score > best.Score:
			best, found = r, true
		case r.Score < best.Score:
		case r.RouteType.priority() < best.RouteType.priority():
			best = r
		case r.RouteType != best.RouteType:
		case r.RouteType == RouteTypeStackAction:
			if r.StackIndex > best.StackIndex {
				best = r
			}
		case r.RouteType == RouteTypeGlobalAction:
			if r.LibraryName == bestLibrary && best.LibraryName != bestLibrary {
				best = r
			}
		}
	}
	return best, found
}
