package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	config "github.com/equimarket/horse_market/configs"
	"github.com/equimarket/horse_market/database"
	"github.com/equimarket/horse_market/models"
	"gorm.io/gorm"
)

// GenerateFactSheet renders a printable PDF of a listing (details plus
// the latest validated vet record), uploads it to Cloudinary and
// returns the hosted URL.
func GenerateFactSheet(horse models.Horse) (string, error) {
	var vetRecord *models.VetRecord
	var record models.VetRecord
	err := database.DB.
		Preload("Vaccines").
		Where("horse_id = ? AND validation_status = ?", horse.ID, "validated").
		Order("review_date desc").
		First(&record).Error
	if err == nil {
		vetRecord = &record
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	htmlData, err := generateFactSheetHTML(horse, vetRecord)
	if err != nil {
		return "", fmt.Errorf("failed to render fact sheet HTML: %w", err)
	}

	pdfBytes, err := generatePDFFromHTML(htmlData)
	if err != nil {
		return "", fmt.Errorf("failed to render fact sheet PDF: %w", err)
	}

	return uploadToCloudinary(pdfBytes, horse.ID.String())
}

func generateFactSheetHTML(horse models.Horse, vetRecord *models.VetRecord) (string, error) {
	tmpl, err := template.ParseFiles("templates/factsheet.html")
	if err != nil {
		return "", err
	}

	price := ""
	if horse.Price != nil {
		price = fmt.Sprintf("%.2f %s", *horse.Price, horse.Currency)
	}

	data := struct {
		Horse       models.Horse
		SellerName  string
		Price       string
		VetRecord   *models.VetRecord
		GeneratedAt string
	}{
		Horse:       horse,
		SellerName:  horse.Seller.FullName,
		Price:       price,
		VetRecord:   vetRecord,
		GeneratedAt: time.Now().Format("January 2, 2006"),
	}

	var renderedHTML bytes.Buffer
	if err := tmpl.Execute(&renderedHTML, data); err != nil {
		return "", err
	}
	return renderedHTML.String(), nil
}

func generatePDFFromHTML(htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}

func uploadToCloudinary(fileBytes []byte, horseID string) (string, error) {
	cloudinaryURL := config.Config("CLOUDINARY_URL")
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	publicID := fmt.Sprintf("fact_sheet_%s", horseID)
	result, err := cld.Upload.Upload(ctx, bytes.NewReader(fileBytes), uploader.UploadParams{
		PublicID: publicID,
		Folder:   "horse_fact_sheets",
	})
	if err != nil {
		return "", err
	}

	return result.SecureURL, nil
}
