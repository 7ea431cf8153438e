package service

import (
	"context"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dcruzdev/restopos/internal/config"
	"github.com/dcruzdev/restopos/internal/domain/entity"
	"github.com/dcruzdev/restopos/internal/domain/enum"
	"github.com/dcruzdev/restopos/internal/domain/repository"
	"github.com/dcruzdev/restopos/pkg/apperror"
	"github.com/dcruzdev/restopos/pkg/pagination"
	"github.com/google/uuid"
)

// SAFTService exports the SAF-T CV audit file: company header, master
// files (customers, suppliers) and the source documents issued in the
// requested period.
type SAFTService struct {
	paymentRepo  repository.PaymentRepository
	customerRepo repository.CustomerRepository
	supplierRepo repository.SupplierRepository
	companyRepo  repository.CompanySettingsRepository
	storage      config.StorageConfig
	audit        *AuditService
}

// NewSAFTService creates a new SAF-T export service
func NewSAFTService(
	paymentRepo repository.PaymentRepository,
	customerRepo repository.CustomerRepository,
	supplierRepo repository.SupplierRepository,
	companyRepo repository.CompanySettingsRepository,
	storage config.StorageConfig,
	audit *AuditService,
) *SAFTService {
	return &SAFTService{
		paymentRepo:  paymentRepo,
		customerRepo: customerRepo,
		supplierRepo: supplierRepo,
		companyRepo:  companyRepo,
		storage:      storage,
		audit:        audit,
	}
}

type saftFile struct {
	XMLName     xml.Name        `xml:"AuditFile"`
	Header      saftHeader      `xml:"Header"`
	MasterFiles saftMasterFiles `xml:"MasterFiles"`
	Documents   saftDocuments   `xml:"SourceDocuments>SalesInvoices"`
}

type saftHeader struct {
	AuditFileVersion  string `xml:"AuditFileVersion"`
	CompanyID         string `xml:"CompanyID"`
	TaxRegistration   string `xml:"TaxRegistrationNumber"`
	CompanyName       string `xml:"CompanyName"`
	FiscalYear        int    `xml:"FiscalYear"`
	StartDate         string `xml:"StartDate"`
	EndDate           string `xml:"EndDate"`
	CurrencyCode      string `xml:"CurrencyCode"`
	DateCreated       string `xml:"DateCreated"`
	SoftwareCertNo    string `xml:"SoftwareCertificateNumber"`
	ProductID         string `xml:"ProductID"`
	ProductVersion    string `xml:"ProductVersion"`
	HeaderComment     string `xml:"HeaderComment,omitempty"`
	Telephone         string `xml:"Telephone,omitempty"`
	Email             string `xml:"Email,omitempty"`
	Website           string `xml:"Website,omitempty"`
	CompanyAddressXML string `xml:"CompanyAddress>AddressDetail"`
}

type saftMasterFiles struct {
	Customers []saftCustomer `xml:"Customer"`
	Suppliers []saftSupplier `xml:"Supplier"`
}

type saftCustomer struct {
	CustomerID  string `xml:"CustomerID"`
	CustomerTax string `xml:"CustomerTaxID"`
	CompanyName string `xml:"CompanyName"`
	Email       string `xml:"Email,omitempty"`
	Telephone   string `xml:"Telephone,omitempty"`
}

type saftSupplier struct {
	SupplierID  string `xml:"SupplierID"`
	SupplierTax string `xml:"SupplierTaxID"`
	CompanyName string `xml:"CompanyName"`
	City        string `xml:"BillingAddress>City,omitempty"`
	Country     string `xml:"BillingAddress>Country,omitempty"`
}

type saftDocuments struct {
	NumberOfEntries int           `xml:"NumberOfEntries"`
	TotalCredit     string        `xml:"TotalCredit"`
	Invoices        []saftInvoice `xml:"Invoice"`
}

type saftInvoice struct {
	InvoiceNo     string `xml:"InvoiceNo"`
	IUD           string `xml:"Iud"`
	InvoiceType   string `xml:"InvoiceType"`
	InvoiceDate   string `xml:"InvoiceDate"`
	CustomerTaxID string `xml:"CustomerTaxID"`
	Hash          string `xml:"Hash"`
	HashControl   string `xml:"HashControl"`
	NetTotal      string `xml:"DocumentTotals>NetTotal"`
	TaxPayable    string `xml:"DocumentTotals>TaxPayable"`
	GrossTotal    string `xml:"DocumentTotals>GrossTotal"`
}

// Export writes the SAF-T CV file for a period and returns its path.
func (s *SAFTService) Export(ctx context.Context, userID uuid.UUID, start, end time.Time) (string, error) {
	if !end.After(start) {
		return "", apperror.NewBadRequestError("Export period end must be after its start")
	}

	settings, err := s.companyRepo.Get(ctx)
	if err != nil {
		return "", err
	}
	payments, err := s.paymentRepo.ListSignedBetween(ctx, start, end)
	if err != nil {
		return "", err
	}

	all := &pagination.PaginationParams{Page: 1, PerPage: 10000}
	customers, _, err := s.customerRepo.List(ctx, all, "")
	if err != nil {
		return "", err
	}
	suppliers, _, err := s.supplierRepo.List(ctx, all, "")
	if err != nil {
		return "", err
	}

	file := &saftFile{
		Header: saftHeader{
			AuditFileVersion:  "1.0",
			CompanyID:         settings.TaxRegistrationNumber,
			TaxRegistration:   settings.TaxRegistrationNumber,
			CompanyName:       settings.CompanyName,
			FiscalYear:        start.Year(),
			StartDate:         start.Format("2006-01-02"),
			EndDate:           end.Format("2006-01-02"),
			CurrencyCode:      settings.CurrencyCode,
			DateCreated:       time.Now().Format("2006-01-02"),
			SoftwareCertNo:    settings.SoftwareCertificateNumber,
			ProductID:         "restopos",
			ProductVersion:    settings.SoftwareVersion,
			Telephone:         settings.Telephone,
			Email:             settings.Email,
			Website:           settings.Website,
			CompanyAddressXML: fmt.Sprintf("%s %s, %s", settings.StreetName, settings.BuildingNumber, settings.City),
		},
	}

	for _, c := range customers {
		taxID := c.TaxID
		if taxID == "" {
			taxID = entity.FinalConsumerTaxID
		}
		file.MasterFiles.Customers = append(file.MasterFiles.Customers, saftCustomer{
			CustomerID:  c.ID.String(),
			CustomerTax: taxID,
			CompanyName: c.Name,
			Email:       c.Email,
			Telephone:   c.Phone,
		})
	}
	for _, sup := range suppliers {
		file.MasterFiles.Suppliers = append(file.MasterFiles.Suppliers, saftSupplier{
			SupplierID:  sup.ID.String(),
			SupplierTax: sup.TaxID,
			CompanyName: sup.CompanyName,
			City:        sup.City,
			Country:     sup.Country,
		})
	}

	var totalCredit int64
	for _, p := range payments {
		net := p.Amount * 100 / (100 + entity.IVARate)
		invoiceDate := ""
		if p.InvoiceDate != nil {
			invoiceDate = p.InvoiceDate.Format("2006-01-02")
		}
		file.Documents.Invoices = append(file.Documents.Invoices, saftInvoice{
			InvoiceNo:     p.InvoiceNo,
			IUD:           p.IUD,
			InvoiceType:   string(p.InvoiceType),
			InvoiceDate:   invoiceDate,
			CustomerTaxID: p.CustomerTaxID,
			Hash:          p.InvoiceHash,
			HashControl:   p.HashAlgorithm,
			NetTotal:      centsToDecimal(net),
			TaxPayable:    centsToDecimal(p.Amount - net),
			GrossTotal:    centsToDecimal(p.Amount),
		})
		if p.InvoiceType != enum.InvoiceTypeCreditNote {
			totalCredit += p.Amount
		}
	}
	file.Documents.NumberOfEntries = len(file.Documents.Invoices)
	file.Documents.TotalCredit = centsToDecimal(totalCredit)

	data, err := xml.MarshalIndent(file, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal saf-t file: %w", err)
	}
	data = append([]byte(xml.Header), data...)

	dir := filepath.Join(s.storage.Path, s.storage.ExportDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("saft_%s_%s.xml",
		start.Format("20060102"), end.Format("20060102")))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write saf-t file: %w", err)
	}

	s.audit.Record(ctx, userID, enum.AuditActionCreate, "SAFTExport", path,
		filepath.Base(path), fmt.Sprintf("%d documents", file.Documents.NumberOfEntries))
	return path, nil
}
