package delivery

import "html/template"

var downloadTemplate = template.Must(template.New("download").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <div style="background: #667eea; color: white; padding: 30px; text-align: center; border-radius: 10px 10px 0 0;">
    <h1 style="margin: 0; font-size: 28px;">Your 3D Assets Are Ready!</h1>
    <p style="margin: 10px 0 0 0;">Thank you for your purchase</p>
  </div>
  <div style="background: #f8f9fa; padding: 30px; border-radius: 0 0 10px 10px;">
    <p class="greeting" style="font-size: 16px; color: #333;">Hi {{.Name}},</p>
    <p style="color: #666; line-height: 1.6;">Your payment has been confirmed and your 3D assets are now ready for download. Below are the download links for each item in your order.</p>
    <div style="background: white; padding: 20px; border-radius: 8px; margin: 20px 0;">
      <h2 class="order" style="color: #333; margin: 0 0 20px 0;">Order #{{.OrderID}}</h2>
      {{- range .Items}}
      <div class="item" style="border: 1px solid #ddd; padding: 15px; margin: 10px 0; border-radius: 8px;">
        <h3 style="color: #333; margin: 0 0 10px 0;">{{.Name}}</h3>
        <p style="color: #666; margin: 5px 0;">Quantity: {{.Quantity}}</p>
        <a class="download" href="{{.URL}}" target="_blank" style="display: inline-block; background: #007bff; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px;">Download 3D Model</a>
        <p class="hint" style="font-size: 12px; color: #999; margin-top: 10px;">{{if .Drive}}This link will open in Google Drive{{else}}Direct download link{{end}}</p>
      </div>
      {{- end}}
    </div>
    <div style="background: #fff3cd; border: 1px solid #ffeaa7; padding: 15px; border-radius: 8px; margin: 20px 0;">
      <h3 style="color: #856404; margin: 0 0 10px 0;">Important Notes:</h3>
      <ul style="color: #856404; margin: 0; padding-left: 20px;">
        <li>Download links are valid for 30 days from the date of purchase</li>
        <li>Please save the files to your computer immediately after download</li>
        <li>For Google Drive links, make sure you're logged into your Google account</li>
        <li>If you have any issues downloading, please contact our support team</li>
      </ul>
    </div>
    <div style="text-align: center; margin: 30px 0;">
      <a class="orders" href="{{.OrdersURL}}" style="display: inline-block; background: #28a745; color: white; padding: 12px 30px; text-decoration: none; border-radius: 6px; font-weight: bold;">View My Orders</a>
    </div>
    <hr style="border: none; border-top: 1px solid #eee; margin: 30px 0;">
    <div style="text-align: center; color: #666; font-size: 14px;">
      {{- if .SupportEmail}}
      <p>Need help? Contact us at <a class="support" href="mailto:{{.SupportEmail}}" style="color: #007bff;">{{.SupportEmail}}</a></p>
      {{- end}}
      <p>&copy; {{.Year}} {{.Brand}}. All rights reserved.</p>
    </div>
  </div>
</div>
`))
