package mailer

import (
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
)

var templateFuncs = htmltemplate.FuncMap{
	"nl2br": func(s string) htmltemplate.HTML {
		return htmltemplate.HTML(strings.ReplaceAll(htmltemplate.HTMLEscapeString(s), "\n", "<br>"))
	},
}

var textFuncs = texttemplate.FuncMap{
	"oneline": func(s string) string {
		return strings.ReplaceAll(s, "\n", " ")
	},
}

const layoutHeader = `<!DOCTYPE html>
<html lang="es">
<head><meta charset="UTF-8"><title>{{.AppName}}</title></head>
<body style="margin:0;padding:0;font-family:Arial,sans-serif;background-color:#f4f4f4;">
<table cellpadding="0" cellspacing="0" width="100%" style="background-color:#f4f4f4;padding:20px 0;"><tr><td align="center">
<table cellpadding="0" cellspacing="0" width="600" style="background-color:#ffffff;border-radius:8px;">
<tr><td align="center" style="background-color:#011850;padding:40px 0;border-radius:8px 8px 0 0;">
<h1 style="color:#ffffff;margin:0;font-size:32px;">{{.AppName}}</h1>`

const layoutFooter = `<tr><td style="background-color:#f8f9fa;padding:30px;border-radius:0 0 8px 8px;text-align:center;">
<p style="color:#999999;font-size:12px;margin:0;">© {{.Year}} {{.AppName}}. Todos los derechos reservados.</p>
<p style="color:#999999;font-size:12px;margin:10px 0 0 0;">Este email ha sido generado automáticamente. Por favor, no responda a este mensaje.</p>
</td></tr>
</table></td></tr></table>
</body>
</html>`

const serviceRows = `<tr><td style="padding:5px 0;color:#666666;">Fecha:</td><td style="text-align:right;"><strong>{{.Date}}</strong></td></tr>
<tr><td style="padding:5px 0;color:#666666;">Hora:</td><td style="text-align:right;"><strong>{{.Time}}</strong></td></tr>
<tr><td style="padding:5px 0;color:#666666;">Recogida:</td><td style="text-align:right;"><strong>{{nl2br .PickupAddress}}</strong></td></tr>
<tr><td style="padding:5px 0;color:#666666;">Destino:</td><td style="text-align:right;"><strong>{{nl2br .DestinationAddress}}</strong></td></tr>
<tr><td style="padding:5px 0;color:#666666;">Pasajeros:</td><td style="text-align:right;"><strong>{{.Passengers}}</strong></td></tr>
<tr><td style="padding:5px 0;color:#666666;">Tipo de vehículo:</td><td style="text-align:right;"><strong>{{.VehicleType}}</strong></td></tr>
{{if and .Extras (ne .Extras "Ninguno")}}<tr><td style="padding:5px 0;color:#666666;">Extras:</td><td style="text-align:right;"><strong>{{.Extras}}</strong></td></tr>{{end}}
{{with .ProviderName}}<tr><td style="padding:5px 0;color:#666666;">Proveedor:</td><td style="text-align:right;"><strong>{{.}}</strong></td></tr>{{end}}`

var confirmationHTML = htmltemplate.Must(htmltemplate.New("confirmation").Funcs(templateFuncs).Parse(layoutHeader + `
<p style="color:#05D9D9;margin:10px 0 0 0;font-size:16px;">Confirmación de Reserva</p>
</td></tr>
<tr><td style="padding:40px 30px;">
<h2 style="color:#011850;margin:0 0 20px 0;">¡Hola {{.Name}}!</h2>
<p style="color:#666666;line-height:1.5;">Tu reserva ha sido confirmada exitosamente.</p>
<p style="color:#011850;font-size:20px;"><strong>Número de reserva: #{{.BookingID}}</strong></p>
<table cellpadding="0" cellspacing="0" width="100%">` + serviceRows + `</table>
{{with .SpecialInstructions}}<h3 style="color:#011850;margin:30px 0 15px 0;">Observaciones</h3>
<p style="margin:0 0 20px 0;color:#666666;">{{nl2br .}}</p>{{end}}
<div style="background-color:#fef3c7;border:1px solid #fbbf24;border-radius:8px;padding:20px;margin:30px 0;">
<h4 style="color:#92400e;margin:0 0 10px 0;">Información Importante</h4>
<p style="color:#92400e;font-size:14px;line-height:1.5;margin:0;">El conductor se pondrá en contacto contigo antes del servicio para confirmar los detalles. Por favor, asegúrate de tener tu teléfono disponible.</p>
</div>
<p style="color:#666666;font-size:14px;text-align:center;">Si necesitas modificar o cancelar tu reserva, accede a tu cuenta en nuestra plataforma o contacta con nosotros.</p>
</td></tr>
` + layoutFooter))

var adminHTML = htmltemplate.Must(htmltemplate.New("admin").Funcs(templateFuncs).Parse(layoutHeader + `
<p style="color:#05D9D9;margin:10px 0 0 0;font-size:16px;">Nueva Reserva Recibida</p>
</td></tr>
<tr><td style="padding:40px 30px;">
<p style="color:#011850;font-size:20px;"><strong>Reserva #{{.BookingID}}</strong>{{with .ServiceID}} (servicio {{.}}){{end}}</p>
<h3 style="color:#011850;">Datos del cliente</h3>
<table cellpadding="0" cellspacing="0" width="100%">
<tr><td style="padding:5px 0;color:#666666;">Cliente:</td><td style="text-align:right;"><strong>{{.UserName}}</strong></td></tr>
<tr><td style="padding:5px 0;color:#666666;">Email:</td><td style="text-align:right;"><strong>{{.UserEmail}}</strong></td></tr>
<tr><td style="padding:5px 0;color:#666666;">Teléfono:</td><td style="text-align:right;"><strong>{{.UserPhone}}</strong></td></tr>
<tr><td style="padding:5px 0;color:#666666;">Cuenta:</td><td style="text-align:right;"><strong>{{.Account}}</strong></td></tr>
</table>
<h3 style="color:#011850;">Detalles del servicio</h3>
<table cellpadding="0" cellspacing="0" width="100%">` + serviceRows + `</table>
{{with .SpecialInstructions}}<h3 style="color:#011850;">Observaciones</h3><p style="color:#666666;">{{nl2br .}}</p>{{end}}
</td></tr>
` + layoutFooter))

var confirmationText = texttemplate.Must(texttemplate.New("confirmation_text").Funcs(textFuncs).Parse(`Hola {{.Name}},

Tu reserva ha sido confirmada exitosamente.

Número de reserva: #{{.BookingID}}
Fecha: {{.Date}}
Hora: {{.Time}}
Recogida: {{oneline .PickupAddress}}
Destino: {{oneline .DestinationAddress}}

Saludos,
Equipo {{.AppName}}`))

var adminText = texttemplate.Must(texttemplate.New("admin_text").Funcs(textFuncs).Parse(`NUEVA RESERVA RECIBIDA

Número de reserva: #{{.BookingID}}
Cliente: {{.UserName}}
Email: {{.UserEmail}}
Teléfono: {{.UserPhone}}
Cuenta: {{.Account}}

DETALLES DEL SERVICIO:
Fecha: {{.Date}}
Hora: {{.Time}}
Recogida: {{oneline .PickupAddress}}
Destino: {{oneline .DestinationAddress}}
Pasajeros: {{.Passengers}}
Tipo de vehículo: {{.VehicleType}}
`))
