package repository

//go:generate mockgen -destination=gomock/mock_repositories.go -package=gomock github.com/invoicecreator/invoice-creator/internal/repository UserRepository,LocalCredentialRepository,ClientRepository,JobRepository
