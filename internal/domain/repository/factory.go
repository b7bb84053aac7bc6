package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Users() UserRepository
	Members() MemberRepository
	Rewards() RewardRepository
	Orders() OrderRepository
	Contracts() ContractRepository
}
