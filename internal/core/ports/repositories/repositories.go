package repositories

// RepositoryProvider bundles the repository facades the service layer needs.
type RepositoryProvider struct {
	Claim    ClaimRepositoryFacade
	Lecturer LecturerRepositoryFacade
	User     UserRepositoryFacade
}
