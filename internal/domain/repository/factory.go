package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Users() UserRepository
	Menu() MenuRepository
	Orders() OrderRepository
	Profiles() ProfileRepository
}
