package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/procurelens/procurement_chat_app/internal/core/domain"
	portssvc "github.com/procurelens/procurement_chat_app/internal/core/ports/services"
	"github.com/procurelens/procurement_chat_app/internal/core/services"
)

// --- Mock ProcurementRepository ---
type MockProcurementRepository struct {
	mock.Mock
}

func (m *MockProcurementRepository) Aggregate(ctx context.Context, recipe domain.Recipe, binds []any) ([]domain.GroupRow, error) {
	args := m.Called(ctx, recipe, binds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GroupRow), args.Error(1)
}

func (m *MockProcurementRepository) Distinct(ctx context.Context, field domain.Field) ([]string, error) {
	args := m.Called(ctx, field)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockProcurementRepository) FindLines(ctx context.Context, field domain.Field, value string, limit int) ([]domain.PurchaseLine, error) {
	args := m.Called(ctx, field, value, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PurchaseLine), args.Error(1)
}

func (m *MockProcurementRepository) ListLinesAbove(ctx context.Context, field domain.Field, threshold decimal.Decimal, inclusive bool, limit int) ([]domain.PurchaseLine, error) {
	args := m.Called(ctx, field, threshold, inclusive, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PurchaseLine), args.Error(1)
}

func (m *MockProcurementRepository) FirstLineSorted(ctx context.Context, match *domain.Condition, bind any, sortField domain.Field, dir domain.SortDirection) (*domain.PurchaseLine, error) {
	args := m.Called(ctx, match, bind, sortField, dir)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchaseLine), args.Error(1)
}

func (m *MockProcurementRepository) SpendingByQuarter(ctx context.Context) ([]domain.GroupRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GroupRow), args.Error(1)
}

func (m *MockProcurementRepository) HighestSpendingQuarter(ctx context.Context) (*domain.GroupRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GroupRow), args.Error(1)
}

func (m *MockProcurementRepository) CountOrdersBetween(ctx context.Context, from, to time.Time) (int64, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProcurementRepository) TotalQuantity(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Mock LabelClassifier ---
type MockLabelClassifier struct {
	mock.Mock
}

func (m *MockLabelClassifier) ClassifyText(ctx context.Context, text string) (portssvc.ClassifierResult, error) {
	args := m.Called(ctx, text)
	return args.Get(0).(portssvc.ClassifierResult), args.Error(1)
}

var testLabelMapping = map[string]string{
	"0": "greeting",
	"1": "show_highest_spending_quarter",
	"2": "total_orders",
	"3": "total_quantity",
	"4": "supplier_orders",
	"5": "department_spending_breakdown",
	"6": "largest_order",
	"7": "cheapest_item",
	"8": "fiscal_year_spending",
	"9": "department_spending_by_name",
}

// --- Test Suite ---
type ChatServiceTestSuite struct {
	suite.Suite
	mockRepo       *MockProcurementRepository
	mockClassifier *MockLabelClassifier
	service        portssvc.ChatSvcFacade
}

func (suite *ChatServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockProcurementRepository)
	suite.mockClassifier = new(MockLabelClassifier)
	resolver := services.NewIntentResolver(suite.mockClassifier, testLabelMapping)
	suite.service = services.NewChatService(suite.mockRepo, resolver, 5*time.Second)
}

func (suite *ChatServiceTestSuite) expectLabel(label string) {
	suite.mockClassifier.On("ClassifyText", mock.Anything, mock.Anything).
		Return(portssvc.ClassifierResult{Label: label, Confidence: 0.99}, nil).Once()
}

// --- Test Cases ---

func (suite *ChatServiceTestSuite) TestHandleMessage_EmptyMessage() {
	resp := suite.service.HandleMessage(context.Background(), "   ")

	suite.False(resp.Success)
	suite.Equal("Input message is missing.", resp.Message)
	suite.mockClassifier.AssertNotCalled(suite.T(), "ClassifyText", mock.Anything, mock.Anything)
}

func (suite *ChatServiceTestSuite) TestHandleMessage_ClassifierError() {
	suite.mockClassifier.On("ClassifyText", mock.Anything, mock.Anything).
		Return(portssvc.ClassifierResult{}, assert.AnError).Once()

	resp := suite.service.HandleMessage(context.Background(), "what is the meaning of life")

	suite.False(resp.Success)
	suite.Equal("Intent not recognized.", resp.Message)
}

func (suite *ChatServiceTestSuite) TestHandleMessage_UnknownLabel() {
	suite.expectLabel("LABEL_99")

	resp := suite.service.HandleMessage(context.Background(), "tell me something")

	suite.False(resp.Success)
	suite.Equal("Intent not recognized.", resp.Message)
}

func (suite *ChatServiceTestSuite) TestHandleMessage_Greeting() {
	suite.expectLabel("LABEL_0")

	resp := suite.service.HandleMessage(context.Background(), "hello there")

	suite.True(resp.Success)
	suite.Equal("Hi! How can I assist you today?", resp.Message)
}

func (suite *ChatServiceTestSuite) TestHandleMessage_HighestSpendingQuarter() {
	suite.expectLabel("LABEL_1")
	row := &domain.GroupRow{Keys: []string{"Q1"}, Value: decimal.NewFromInt(500000)}
	suite.mockRepo.On("HighestSpendingQuarter", mock.Anything).Return(row, nil).Once()

	resp := suite.service.HandleMessage(context.Background(), "which quarter had the highest spending")

	suite.True(resp.Success)
	suite.Equal("The highest spending quarter is 'Q1' with a total spending of $500,000.00.", resp.Message)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ChatServiceTestSuite) TestHandleMessage_HighestSpendingQuarter_EmptyStore() {
	suite.expectLabel("LABEL_1")
	suite.mockRepo.On("HighestSpendingQuarter", mock.Anything).Return(nil, nil).Once()

	resp := suite.service.HandleMessage(context.Background(), "which quarter had the highest spending")

	suite.False(resp.Success)
	suite.Equal("No data found for the query.", resp.Message)
}

func (suite *ChatServiceTestSuite) TestHandleMessage_SupplierNotFound() {
	suite.expectLabel("LABEL_4")
	suite.mockRepo.On("Distinct", mock.Anything, domain.FieldSupplierName).
		Return([]string{"Acme Corp"}, nil).Once()

	resp := suite.service.HandleMessage(context.Background(), "Show me orders for Supplier Zed")

	suite.False(resp.Success)
	suite.Equal("Supplier name not found in query.", resp.Message)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindLines", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ChatServiceTestSuite) TestHandleMessage_SupplierOrders_NoOrders() {
	suite.expectLabel("LABEL_4")
	suite.mockRepo.On("Distinct", mock.Anything, domain.FieldSupplierName).
		Return([]string{"Acme Corp"}, nil).Once()
	suite.mockRepo.On("FindLines", mock.Anything, domain.FieldSupplierName, "Acme Corp", 0).
		Return([]domain.PurchaseLine{}, nil).Once()

	resp := suite.service.HandleMessage(context.Background(), "show me orders for acme corp")

	suite.True(resp.Success)
	suite.Equal("No orders found for supplier: Acme Corp.", resp.Message)
}

func (suite *ChatServiceTestSuite) TestHandleMessage_SupplierOrders_Found() {
	suite.expectLabel("LABEL_4")
	suite.mockRepo.On("Distinct", mock.Anything, domain.FieldSupplierName).
		Return([]string{"Acme Corp"}, nil).Once()
	line := domain.PurchaseLine{
		PurchaseOrderNumber: "PO12345",
		CreationDate:        time.Date(2013, 5, 1, 0, 0, 0, 0, time.UTC),
		SupplierName:        "Acme Corp",
		TotalPrice:          decimal.NewFromInt(250),
	}
	suite.mockRepo.On("FindLines", mock.Anything, domain.FieldSupplierName, "Acme Corp", 0).
		Return([]domain.PurchaseLine{line}, nil).Once()

	resp := suite.service.HandleMessage(context.Background(), "show me orders for acme corp")

	suite.True(resp.Success)
	suite.Contains(resp.Message, "Orders for the supplier:")
	suite.Contains(resp.Message, "Purchase Order Number: PO12345")
	suite.Contains(resp.Message, "Total Price: $250.00")
	suite.Contains(resp.Message, "Creation Date: 2013-05-01")

	data, ok := resp.Data.([]map[string]any)
	suite.Require().True(ok)
	suite.Len(data, 1)
	suite.Equal("PO12345", data[0]["Purchase Order Number"])
}

func (suite *ChatServiceTestSuite) TestHandleMessage_TotalOrders() {
	suite.expectLabel("LABEL_2")
	suite.mockRepo.On("CountOrdersBetween", mock.Anything,
		mock.MatchedBy(func(t time.Time) bool { return t.Format("2006-01-02") == "2022-01-01" }),
		mock.MatchedBy(func(t time.Time) bool { return t.Format("2006-01-02") == "2022-12-31" }),
	).Return(int64(42), nil).Once()

	resp := suite.service.HandleMessage(context.Background(), "how many orders were placed from 2022-01-01 to 2022-12-31")

	suite.True(resp.Success)
	suite.Equal("The total number of orders placed is 42.", resp.Message)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ChatServiceTestSuite) TestHandleMessage_TotalOrders_MissingRange() {
	suite.expectLabel("LABEL_2")

	resp := suite.service.HandleMessage(context.Background(), "how many orders were placed")

	suite.False(resp.Success)
	suite.Equal("Date range not found in query.", resp.Message)
}

func (suite *ChatServiceTestSuite) TestHandleMessage_TotalOrders_ZeroCount() {
	suite.expectLabel("LABEL_2")
	suite.mockRepo.On("CountOrdersBetween", mock.Anything, mock.Anything, mock.Anything).
		Return(int64(0), nil).Once()

	resp := suite.service.HandleMessage(context.Background(), "how many orders from 2022-01-01 to 2022-12-31")

	suite.False(resp.Success)
	suite.Equal("No data found for the query.", resp.Message)
}

func (suite *ChatServiceTestSuite) TestHandleMessage_TotalQuantity() {
	suite.expectLabel("LABEL_3")
	suite.mockRepo.On("TotalQuantity", mock.Anything).
		Return(decimal.NewFromInt(12345), nil).Once()

	resp := suite.service.HandleMessage(context.Background(), "what is the total quantity of items ordered")

	suite.True(resp.Success)
	suite.Equal("The total quantity of items ordered is 12,345.", resp.Message)

	env, ok := resp.Data.(*domain.QuantityEnvelope)
	suite.Require().True(ok)
	suite.True(env.Success)
	suite.Equal(int64(12345), env.TotalQuantity)
}

func (suite *ChatServiceTestSuite) TestHandleMessage_TotalQuantity_RepoError() {
	suite.expectLabel("LABEL_3")
	suite.mockRepo.On("TotalQuantity", mock.Anything).
		Return(decimal.Zero, assert.AnError).Once()

	resp := suite.service.HandleMessage(context.Background(), "what is the total quantity of items ordered")

	suite.True(resp.Success)
	suite.Contains(resp.Message, "An error occurred:")

	env, ok := resp.Data.(*domain.QuantityEnvelope)
	suite.Require().True(ok)
	suite.False(env.Success)
}

func (suite *ChatServiceTestSuite) TestHandleMessage_DepartmentSpendingBreakdown() {
	suite.expectLabel("LABEL_5")
	rows := []domain.GroupRow{
		{Keys: []string{"Water Resources"}, Value: decimal.NewFromInt(100)},
		{Keys: []string{"Parks"}, Value: decimal.NewFromInt(50)},
	}
	suite.mockRepo.On("Aggregate", mock.Anything, mock.Anything, mock.Anything).
		Return(rows, nil).Once()

	resp := suite.service.HandleMessage(context.Background(), "show me spending by department")

	suite.True(resp.Success)
	suite.Contains(resp.Message, "Spending breakdown by department:")
	suite.Contains(resp.Message, "- Department Name: Water Resources, Total Spending: $100.00")
	suite.Contains(resp.Message, "- Department Name: Parks, Total Spending: $50.00")

	data, ok := resp.Data.([]map[string]any)
	suite.Require().True(ok)
	suite.Len(data, 2)
}

func (suite *ChatServiceTestSuite) TestHandleMessage_DepartmentSpendingByName() {
	suite.expectLabel("LABEL_9")
	suite.mockRepo.On("Distinct", mock.Anything, domain.FieldDepartmentName).
		Return([]string{"Water Resources"}, nil).Once()
	rows := []domain.GroupRow{{Keys: []string{"Water Resources"}, Value: decimal.NewFromFloat(1234.5)}}
	suite.mockRepo.On("Aggregate", mock.Anything, mock.Anything, []any{"Water Resources"}).
		Return(rows, nil).Once()

	resp := suite.service.HandleMessage(context.Background(), "total spending for the water resources department")

	suite.True(resp.Success)
	suite.Equal("The total spending for the department 'Water Resources' is $1,234.50.", resp.Message)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ChatServiceTestSuite) TestHandleMessage_FiscalYearSpending() {
	suite.expectLabel("LABEL_8")
	rows := []domain.GroupRow{{Value: decimal.NewFromInt(999)}}
	suite.mockRepo.On("Aggregate", mock.Anything, mock.Anything, []any{"2014"}).
		Return(rows, nil).Once()

	resp := suite.service.HandleMessage(context.Background(), "total spending for fiscal year 2014")

	suite.True(resp.Success)
	suite.Equal("Total spending for fiscal year 2014: $999.00.", resp.Message)

	record, ok := resp.Data.(map[string]any)
	suite.Require().True(ok)
	suite.Equal("2014", record["Fiscal Year"])
	suite.Equal("$999.00", record["Total Spending"])
}

func (suite *ChatServiceTestSuite) TestHandleMessage_LargestOrder() {
	suite.expectLabel("LABEL_6")
	rows := []domain.GroupRow{{Keys: []string{"PO99999"}, Value: decimal.NewFromInt(777)}}
	suite.mockRepo.On("Aggregate", mock.Anything, mock.Anything, mock.Anything).
		Return(rows, nil).Once()
	line := domain.PurchaseLine{
		PurchaseOrderNumber: "PO99999",
		DepartmentName:      "Corrections",
		SupplierName:        "Acme Corp",
	}
	suite.mockRepo.On("FindLines", mock.Anything, domain.FieldPurchaseOrderNumber, "PO99999", 1).
		Return([]domain.PurchaseLine{line}, nil).Once()

	resp := suite.service.HandleMessage(context.Background(), "what is the largest order")

	suite.True(resp.Success)
	suite.Equal("The largest order is:\n- Purchase Order Number: PO99999\n- Department Name: Corrections\n- Supplier Name: Acme Corp\n- Total Quantity: 777", resp.Message)
}

func (suite *ChatServiceTestSuite) TestHandleMessage_LargestOrder_DetailMissing() {
	suite.expectLabel("LABEL_6")
	rows := []domain.GroupRow{{Keys: []string{"PO99999"}, Value: decimal.NewFromInt(777)}}
	suite.mockRepo.On("Aggregate", mock.Anything, mock.Anything, mock.Anything).
		Return(rows, nil).Once()
	suite.mockRepo.On("FindLines", mock.Anything, domain.FieldPurchaseOrderNumber, "PO99999", 1).
		Return([]domain.PurchaseLine{}, nil).Once()

	resp := suite.service.HandleMessage(context.Background(), "what is the largest order")

	suite.True(resp.Success)
	suite.Equal("Order details not found for the largest order.", resp.Message)
}

func (suite *ChatServiceTestSuite) TestHandleMessage_CheapestItem() {
	suite.expectLabel("LABEL_7")
	line := &domain.PurchaseLine{
		PurchaseOrderNumber: "PO10001",
		DepartmentName:      "Parks",
		SupplierName:        "Acme Corp",
		ItemName:            "Pencil",
		ItemDescription:     "No. 2 pencil",
		UnitPrice:           decimal.NewFromFloat(0.05),
	}
	suite.mockRepo.On("FirstLineSorted", mock.Anything, (*domain.Condition)(nil), nil, domain.FieldUnitPrice, domain.SortAsc).
		Return(line, nil).Once()

	resp := suite.service.HandleMessage(context.Background(), "what is the cheapest item")

	suite.True(resp.Success)
	suite.Equal("The cheapest item is 'Pencil' priced at $0.05.\nSupplier: Acme Corp\nDepartment: Parks\nPurchase Order: PO10001\nDescription: No. 2 pencil", resp.Message)
}

func (suite *ChatServiceTestSuite) TestHandleMessage_ExtractorQueriesAreBounded() {
	suite.expectLabel("LABEL_4")
	// The dictionary lookups scan whole columns, so the query timeout must
	// already be in force when they run.
	boundedCtx := mock.MatchedBy(func(ctx context.Context) bool {
		_, ok := ctx.Deadline()
		return ok
	})
	suite.mockRepo.On("Distinct", boundedCtx, domain.FieldSupplierName).
		Return([]string{"Acme Corp"}, nil).Once()
	suite.mockRepo.On("FindLines", boundedCtx, domain.FieldSupplierName, "Acme Corp", 0).
		Return([]domain.PurchaseLine{}, nil).Once()

	resp := suite.service.HandleMessage(context.Background(), "show me orders for acme corp")

	suite.True(resp.Success)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ChatServiceTestSuite) TestHandleMessage_RepoError() {
	suite.expectLabel("LABEL_5")
	suite.mockRepo.On("Aggregate", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, assert.AnError).Once()

	resp := suite.service.HandleMessage(context.Background(), "show me spending by department")

	suite.False(resp.Success)
	suite.Equal("No data found for the query.", resp.Message)
}

func TestChatServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ChatServiceTestSuite))
}
