package terminal

import (
	"bank-management/internal/dto"
	"bank-management/internal/models"
)

func toAccountResponse(account *models.Account) dto.AccountResponse {
	return dto.AccountResponse{
		ID:           account.ID,
		Name:         account.Name,
		AccountType:  account.AccountType,
		Balance:      account.Balance.StringFixed(2),
		InterestRate: account.InterestRate.String(),
		CreatedAt:    account.CreatedAt,
	}
}

func toAccountResponses(accounts []models.Account) []dto.AccountResponse {
	responses := make([]dto.AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = toAccountResponse(&accounts[i])
	}
	return responses
}

func toMessageResponses(messages []models.Message) []dto.MessageResponse {
	responses := make([]dto.MessageResponse, len(messages))
	for i, message := range messages {
		responses[i] = dto.MessageResponse{
			ID:        message.ID,
			Body:      message.Body,
			Viewed:    message.Viewed,
			CreatedAt: message.CreatedAt,
		}
	}
	return responses
}

func toUserResponse(user *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:      user.ID,
		Name:    user.Name,
		Age:     user.Age,
		Address: user.Address,
		Role:    user.Role,
	}
}

func toUserResponses(users []models.User) []dto.UserResponse {
	responses := make([]dto.UserResponse, len(users))
	for i := range users {
		responses[i] = toUserResponse(&users[i])
	}
	return responses
}
