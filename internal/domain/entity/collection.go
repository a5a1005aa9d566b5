package entity

// Nombres de colección para el asignador de números de visualización.
const (
	CollectionUsers         = "users"
	CollectionProjects      = "projects"
	CollectionTasks         = "tasks"
	CollectionComments      = "comments"
	CollectionHistory       = "history"
	CollectionNotifications = "notifications"
)
