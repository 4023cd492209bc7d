package api

// canModify is the single ownership predicate applied by every mutation
// handler: the session user must own the resource. Handlers decide whether a
// denial surfaces as 403 or is masked as 404.
func canModify(sessionUserID, ownerID int64) bool {
	return sessionUserID > 0 && sessionUserID == ownerID
}
