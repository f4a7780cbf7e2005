// Package handlers adapts the core services to HTTP. Handlers translate
// bindings and typed core errors; policy that the core leaves to the
// caller (sender-only edits, owner-leave rules) is enforced here.
package handlers

import "homeroom/core"

type Handler struct {
	identity *core.IdentityService
	friends  *core.FriendService
	groups   *core.GroupService
	messages *core.MessageService
	index    *core.IndexService
	tasks    *core.TaskService
}

func New(
	identity *core.IdentityService,
	friends *core.FriendService,
	groups *core.GroupService,
	messages *core.MessageService,
	index *core.IndexService,
	tasks *core.TaskService,
) *Handler {
	return &Handler{
		identity: identity,
		friends:  friends,
		groups:   groups,
		messages: messages,
		index:    index,
		tasks:    tasks,
	}
}
